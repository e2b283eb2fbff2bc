// Package repomanager selects and wires a storage backend. Exactly one
// manager is constructed at startup and injected into the services; the
// services never know which backend is active.
package repomanager

import (
	"context"

	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/labels"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/notes"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Notes() notes.Repository
	Labels() labels.Repository

	// WithinTx runs fn against a manager whose repositories share one
	// atomic scope: a database transaction on the Postgres backend, the
	// store-wide critical section on the in-memory backend. Multi-step
	// sequences such as social find-or-create and label cascade deletes
	// go through here.
	WithinTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error

	Close() error
}
