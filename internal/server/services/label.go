package services

import (
	"context"
	"strings"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
)

// LabelService implements the label operations. Deleting a label also strips
// it from every note of the owner, atomically, so no note ever references a
// label that no longer exists.
type LabelService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewLabelService(m repomanager.RepositoryManager, logger logging.Logger) *LabelService {
	return &LabelService{
		repomanager: m,
		logger:      logger.With("service", "labels"),
	}
}

// List returns the owner's labels sorted by name.
func (s *LabelService) List(ctx context.Context, ownerID string) ([]*models.Label, error) {
	return s.repomanager.Labels().ListByOwner(ctx, ownerID)
}

// Create stores a new label. An empty color falls back to the default.
func (s *LabelService) Create(ctx context.Context, ownerID string, label *models.Label) (*models.Label, error) {
	if strings.TrimSpace(label.Name) == "" {
		return nil, &common.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	label.UserID = ownerID
	return s.repomanager.Labels().Create(ctx, label)
}

// Update renames or recolors an owned label.
func (s *LabelService) Update(ctx context.Context, ownerID, labelID string, patch models.LabelUpdate) (*models.Label, error) {
	if _, err := s.getOwned(ctx, ownerID, labelID); err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, &common.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	return s.repomanager.Labels().Update(ctx, labelID, patch)
}

// Delete removes an owned label and detaches it from all of the owner's
// notes in the same atomic scope.
func (s *LabelService) Delete(ctx context.Context, ownerID, labelID string) error {
	if _, err := s.getOwned(ctx, ownerID, labelID); err != nil {
		return err
	}

	return s.repomanager.WithinTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		ok, err := m.Labels().Delete(ctx, labelID)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorNotFound
		}

		return m.Notes().RemoveLabelFromAll(ctx, ownerID, labelID)
	})
}

func (s *LabelService) getOwned(ctx context.Context, ownerID, labelID string) (*models.Label, error) {
	label, err := s.repomanager.Labels().GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if !common.SameID(label.UserID, ownerID) {
		return nil, common.ErrorForbidden
	}
	return label, nil
}
