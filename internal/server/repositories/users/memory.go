package users

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// MemoryRepository is the volatile backend. Uniqueness checks and the
// insert happen under one lock, so duplicate registrations cannot race
// past each other.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*models.User{}}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		// emails are unique and compared case-sensitively, as stored
		if u.Email == user.Email {
			return nil, common.ErrorConflict
		}
		for provider, providerID := range user.ProviderIDs {
			if u.ProviderIDs[provider] == providerID {
				return nil, common.ErrorConflict
			}
		}
	}

	r.nextID++
	stored := cloneUser(user)
	stored.ID = strconv.FormatInt(r.nextID, 10)
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = stored

	return cloneUser(stored), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[common.CanonicalID(id)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByProviderID(ctx context.Context, provider, providerID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if id, ok := u.ProviderIDs[provider]; ok && id == providerID {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) LinkProvider(ctx context.Context, userID, provider, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if id, ok := u.ProviderIDs[provider]; ok && id == providerID {
			return common.ErrorConflict
		}
	}

	u, ok := r.byID[common.CanonicalID(userID)]
	if !ok {
		return common.ErrorNotFound
	}
	if u.ProviderIDs == nil {
		u.ProviderIDs = map[string]string{}
	}
	u.ProviderIDs[provider] = providerID

	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.ProviderIDs != nil {
		c.ProviderIDs = maps.Clone(u.ProviderIDs)
	}
	return &c
}
