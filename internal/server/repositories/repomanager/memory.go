package repomanager

import (
	"context"
	"sync"

	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/labels"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/notes"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/users"
)

// MemoryRepositoryManager is the volatile backend: nothing survives a
// restart. WithinTx degrades to one store-wide critical section, which is
// all the single-process model needs for its read-then-write sequences.
type MemoryRepositoryManager struct {
	mu     sync.Mutex
	users  *users.MemoryRepository
	notes  *notes.MemoryRepository
	labels *labels.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:  users.NewMemoryRepository(),
		notes:  notes.NewMemoryRepository(),
		labels: labels.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Notes() notes.Repository {
	return m.notes
}

func (m *MemoryRepositoryManager) Labels() labels.Repository {
	return m.labels
}

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tm RepositoryManager) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
