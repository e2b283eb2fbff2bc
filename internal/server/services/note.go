package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
	"github.com/Janxz01/PersonalNoteHub/internal/server/summarizer"
)

// NoteFilter narrows a note listing. Archived selects the archive view
// instead of the default active view; LabelID keeps only notes carrying
// that label.
type NoteFilter struct {
	Archived bool
	LabelID  string
}

// NoteService implements the note operations. Every accessor verifies that
// the note exists before checking ownership, so a missing note and someone
// else's note are distinguishable to the caller.
type NoteService struct {
	repomanager    repomanager.RepositoryManager
	summarizer     summarizer.Summarizer
	summaryTimeout time.Duration
	logger         logging.Logger
}

// NewNoteService wires the store and the optional summarizer. A nil
// summarizer disables on-save summaries and makes explicit summary requests
// fail with common.ErrorUnavailable.
func NewNoteService(m repomanager.RepositoryManager, sum summarizer.Summarizer, summaryTimeout time.Duration, logger logging.Logger) *NoteService {
	return &NoteService{
		repomanager:    m,
		summarizer:     sum,
		summaryTimeout: summaryTimeout,
		logger:         logger.With("service", "notes"),
	}
}

// List returns the owner's notes in display order: pinned first, then most
// recently updated. The default view excludes archived notes; the archive
// view contains only them.
func (s *NoteService) List(ctx context.Context, ownerID string, filter NoteFilter) ([]*models.Note, error) {
	all, err := s.repomanager.Notes().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Note, 0, len(all))
	for _, n := range all {
		if n.Archived != filter.Archived {
			continue
		}
		if filter.LabelID != "" && !n.HasLabel(filter.LabelID) {
			continue
		}
		result = append(result, n)
	}

	return result, nil
}

// Get loads a single note after an ownership check.
func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (*models.Note, error) {
	return s.getOwned(ctx, ownerID, noteID)
}

// Create validates and stores a new note. With generateSummary set it then
// attempts an on-save summary; a summary failure never fails the create,
// the note is returned with SummaryError set instead.
func (s *NoteService) Create(ctx context.Context, ownerID string, note *models.Note, generateSummary bool) (*models.Note, error) {
	if strings.TrimSpace(note.Title) == "" {
		return nil, &common.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(note.Content) == "" {
		return nil, &common.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	note.UserID = ownerID
	note.Summary = ""
	note.LabelIDs = dedupIDs(note.LabelIDs)

	created, err := s.repomanager.Notes().Create(ctx, note)
	if err != nil {
		return nil, err
	}

	if !generateSummary {
		return created, nil
	}

	return s.attachSummary(ctx, created), nil
}

// Update applies a partial update to an owned note, with the same optional
// on-save summary contract as Create.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, patch models.NoteUpdate, generateSummary bool) (*models.Note, error) {
	if _, err := s.getOwned(ctx, ownerID, noteID); err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &common.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, &common.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if patch.LabelIDs != nil {
		deduped := dedupIDs(*patch.LabelIDs)
		patch.LabelIDs = &deduped
	}

	updated, err := s.repomanager.Notes().Update(ctx, noteID, patch)
	if err != nil {
		return nil, err
	}

	if !generateSummary {
		return updated, nil
	}

	return s.attachSummary(ctx, updated), nil
}

// Delete removes an owned note permanently.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if _, err := s.getOwned(ctx, ownerID, noteID); err != nil {
		return err
	}

	ok, err := s.repomanager.Notes().Delete(ctx, noteID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}

	return nil
}

// TogglePinned flips the pinned flag and returns the updated note.
func (s *NoteService) TogglePinned(ctx context.Context, ownerID, noteID string) (*models.Note, error) {
	note, err := s.getOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	pinned := !note.Pinned
	return s.repomanager.Notes().Update(ctx, noteID, models.NoteUpdate{Pinned: &pinned})
}

// ToggleArchived flips the archived flag and returns the updated note.
func (s *NoteService) ToggleArchived(ctx context.Context, ownerID, noteID string) (*models.Note, error) {
	note, err := s.getOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	archived := !note.Archived
	return s.repomanager.Notes().Update(ctx, noteID, models.NoteUpdate{Archived: &archived})
}

// SetLabel attaches or detaches a label on an owned note. Both the note and
// the label have to belong to the caller. The operation is idempotent: a
// no-op attach or detach returns the note unchanged without touching
// UpdatedAt.
func (s *NoteService) SetLabel(ctx context.Context, ownerID, noteID, labelID string, attach bool) (*models.Note, error) {
	note, err := s.getOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	label, err := s.repomanager.Labels().GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if !common.SameID(label.UserID, ownerID) {
		return nil, common.ErrorForbidden
	}

	if note.HasLabel(labelID) == attach {
		return note, nil
	}

	labelIDs := make([]string, 0, len(note.LabelIDs)+1)
	if attach {
		labelIDs = append(append(labelIDs, note.LabelIDs...), common.CanonicalID(labelID))
	} else {
		for _, id := range note.LabelIDs {
			if !common.SameID(id, labelID) {
				labelIDs = append(labelIDs, id)
			}
		}
	}

	return s.repomanager.Notes().Update(ctx, noteID, models.NoteUpdate{LabelIDs: &labelIDs})
}

// Summarize generates and persists a summary on explicit request. Unlike
// the on-save path, a failure here is reported to the caller.
func (s *NoteService) Summarize(ctx context.Context, ownerID, noteID string) (*models.Note, error) {
	if s.summarizer == nil {
		return nil, common.ErrorUnavailable
	}

	note, err := s.getOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	summary, err := s.generateSummary(ctx, note.Content)
	if err != nil {
		s.logger.Warn(ctx, "summary request failed", "note", note.ID, "error", err)
		return nil, common.ErrorUnavailable
	}

	return s.repomanager.Notes().Update(ctx, noteID, models.NoteUpdate{Summary: &summary})
}

func (s *NoteService) getOwned(ctx context.Context, ownerID, noteID string) (*models.Note, error) {
	note, err := s.repomanager.Notes().GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !common.SameID(note.UserID, ownerID) {
		return nil, common.ErrorForbidden
	}
	return note, nil
}

// attachSummary runs the on-save summary for an already persisted note.
// Failures only annotate the returned note; the stored note is left as is.
func (s *NoteService) attachSummary(ctx context.Context, note *models.Note) *models.Note {
	if s.summarizer == nil {
		return note
	}

	summary, err := s.generateSummary(ctx, note.Content)
	if err != nil {
		s.logger.Warn(ctx, "on-save summary failed", "note", note.ID, "error", err)
		note.SummaryError = "summary generation failed"
		return note
	}

	updated, err := s.repomanager.Notes().Update(ctx, note.ID, models.NoteUpdate{Summary: &summary})
	if err != nil {
		s.logger.Warn(ctx, "storing summary failed", "note", note.ID, "error", err)
		note.SummaryError = "summary generation failed"
		return note
	}

	return updated
}

func (s *NoteService) generateSummary(ctx context.Context, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.summaryTimeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(ctx, content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", errors.New("empty summary")
	}

	return summary, nil
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		canonical := common.CanonicalID(id)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}
	return result
}
