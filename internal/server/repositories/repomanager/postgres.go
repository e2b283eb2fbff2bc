package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Janxz01/PersonalNoteHub/internal/dbx"
	"github.com/Janxz01/PersonalNoteHub/internal/server/migrations"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/labels"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/notes"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db   *sql.DB
	conn dbx.DBTX
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{db: db, conn: db}, nil
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.conn)
}

func (m *PostgresRepositoryManager) Notes() notes.Repository {
	return notes.NewPostgresRepository(m.conn)
}

func (m *PostgresRepositoryManager) Labels() labels.Repository {
	return labels.NewPostgresRepository(m.conn)
}

func (m *PostgresRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tm RepositoryManager) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &PostgresRepositoryManager{db: m.db, conn: tx})
	})
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
