package notes

import (
	"context"

	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// Repository stores notes. Create applies field defaults and assigns the
// identifier and timestamps; Update applies only the fields set in the
// patch and always refreshes UpdatedAt. ListByOwner returns pinned notes
// first, then by UpdatedAt descending, with ties broken by insertion order.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	Update(ctx context.Context, id string, patch models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id string) (bool, error)

	// RemoveLabelFromAll detaches the label from every note of the owner;
	// used when a label is deleted so no note keeps a dangling reference.
	RemoveLabelFromAll(ctx context.Context, ownerID, labelID string) error
}
