// Package server initializes and runs the note hub server: it selects the
// storage backend, runs migrations, wires the services and serves the HTTP
// API until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/config"
	"github.com/Janxz01/PersonalNoteHub/internal/server/httpapi"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
	"github.com/Janxz01/PersonalNoteHub/internal/server/services"
	"github.com/Janxz01/PersonalNoteHub/internal/server/summarizer"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var m repomanager.RepositoryManager
	if cfg.DatabaseDSN == "" {
		logger.Info(ctx, "No database DSN configured, using in-memory store")
		m = repomanager.NewMemoryRepositoryManager()
	} else {
		pm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m = pm
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var sum summarizer.Summarizer
	if cfg.SummarizerAPIKey != "" {
		sum = summarizer.NewOpenAISummarizer(cfg.SummarizerAPIKey, cfg.SummarizerBaseURL, cfg.SummarizerModel)
	} else {
		logger.Info(ctx, "No summarizer API key configured, summaries disabled")
	}

	us := services.NewUserService(m, cfg, logger)
	ns := services.NewNoteService(m, sum, cfg.SummarizerTimeout, logger)
	ls := services.NewLabelService(m, logger)
	as := services.NewAvatarService(cfg)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, ns, ls, as)

	return &App{config: cfg, logger: logger, repomanager: m, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "error closing store", "error", err)
	}
}
