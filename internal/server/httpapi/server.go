// Package httpapi exposes the services over HTTP/JSON. Handlers stay thin:
// they decode, call a service and encode, with all policy living below.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/services"
)

type Server struct {
	address string
	users   *services.UserService
	notes   *services.NoteService
	labels  *services.LabelService
	avatars *services.AvatarService
	logger  logging.Logger
}

func NewServer(address string, logger logging.Logger,
	us *services.UserService, ns *services.NoteService,
	ls *services.LabelService, as *services.AvatarService) *Server {
	return &Server{
		address: address,
		users:   us,
		notes:   ns,
		labels:  ls,
		avatars: as,
		logger:  logger.With("module", "http_server"),
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", s.handlePing)
	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)
	r.Post("/api/social-login", s.handleSocialLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/notes", s.handleListNotes)
		r.Post("/api/notes", s.handleCreateNote)
		r.Get("/api/notes/{id}", s.handleGetNote)
		r.Patch("/api/notes/{id}", s.handleUpdateNote)
		r.Delete("/api/notes/{id}", s.handleDeleteNote)
		r.Post("/api/notes/{id}/pin", s.handleTogglePinned)
		r.Post("/api/notes/{id}/archive", s.handleToggleArchived)
		r.Post("/api/notes/{id}/summary", s.handleSummarize)
		r.Put("/api/notes/{id}/labels/{labelId}", s.handleAttachLabel)
		r.Delete("/api/notes/{id}/labels/{labelId}", s.handleDetachLabel)

		r.Get("/api/labels", s.handleListLabels)
		r.Post("/api/labels", s.handleCreateLabel)
		r.Patch("/api/labels/{id}", s.handleUpdateLabel)
		r.Delete("/api/labels/{id}", s.handleDeleteLabel)

		r.Post("/api/format", s.handleFormat)
		r.Get("/api/avatar-upload-url", s.handleAvatarUploadURL)
		r.Get("/api/avatar-url", s.handleAvatarViewURL)
	})

	return r
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
