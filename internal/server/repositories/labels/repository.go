package labels

import (
	"context"

	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// Repository stores labels. Create assigns the identifier and applies the
// default color; Update applies only set fields and normalizes an empty
// color back to the default. ListByOwner sorts by name, case-insensitively.
type Repository interface {
	Create(ctx context.Context, label *models.Label) (*models.Label, error)
	GetByID(ctx context.Context, id string) (*models.Label, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Label, error)
	Update(ctx context.Context, id string, patch models.LabelUpdate) (*models.Label, error)
	Delete(ctx context.Context, id string) (bool, error)
}
