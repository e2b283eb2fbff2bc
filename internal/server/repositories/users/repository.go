package users

import (
	"context"

	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// Repository stores user accounts. Uniqueness of email and of each
// (provider, providerID) pair is enforced inside the store: Create and
// LinkProvider return common.ErrorConflict on a duplicate, so callers never
// need a separate existence check before inserting.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*models.User, error)
	LinkProvider(ctx context.Context, userID, provider, providerID string) error
}
