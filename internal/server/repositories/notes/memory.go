package notes

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

type memoryRecord struct {
	note *models.Note
	seq  int64 // insertion order, the final sort tie-break
}

// MemoryRepository is the volatile backend.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[string]*memoryRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*memoryRecord{}}
}

func (r *MemoryRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := cloneNote(note)
	stored.ID = strconv.FormatInt(r.nextID, 10)
	stored.UserID = common.CanonicalID(note.UserID)
	applyDefaults(stored)

	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &memoryRecord{note: stored, seq: r.nextID}

	return cloneNote(stored), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[common.CanonicalID(id)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneNote(rec.note), nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner := common.CanonicalID(ownerID)
	records := make([]*memoryRecord, 0)
	for _, rec := range r.byID {
		if common.SameID(rec.note.UserID, owner) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.note.Pinned != b.note.Pinned {
			return a.note.Pinned
		}
		if !a.note.UpdatedAt.Equal(b.note.UpdatedAt) {
			return a.note.UpdatedAt.After(b.note.UpdatedAt)
		}
		return a.seq < b.seq
	})

	out := make([]*models.Note, len(records))
	for i, rec := range records {
		out[i] = cloneNote(rec.note)
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.NoteUpdate) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[common.CanonicalID(id)]
	if !ok {
		return nil, common.ErrorNotFound
	}

	n := rec.note
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Summary != nil {
		n.Summary = *patch.Summary
	}
	if patch.Pinned != nil {
		n.Pinned = *patch.Pinned
	}
	if patch.Archived != nil {
		n.Archived = *patch.Archived
	}
	if patch.LabelIDs != nil {
		n.LabelIDs = slices.Clone(*patch.LabelIDs)
	}
	if patch.Color != nil {
		n.Color = *patch.Color
	}
	if patch.FontSize != nil {
		n.FontSize = *patch.FontSize
	}
	n.UpdatedAt = time.Now()

	return cloneNote(n), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := common.CanonicalID(id)
	if _, ok := r.byID[key]; !ok {
		return false, nil
	}
	delete(r.byID, key)
	return true, nil
}

func (r *MemoryRepository) RemoveLabelFromAll(ctx context.Context, ownerID, labelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.byID {
		n := rec.note
		if !common.SameID(n.UserID, ownerID) || !n.HasLabel(labelID) {
			continue
		}
		kept := n.LabelIDs[:0]
		for _, id := range n.LabelIDs {
			if !common.SameID(id, labelID) {
				kept = append(kept, id)
			}
		}
		n.LabelIDs = kept
		n.UpdatedAt = time.Now()
	}

	return nil
}

func cloneNote(n *models.Note) *models.Note {
	c := *n
	c.LabelIDs = slices.Clone(n.LabelIDs)
	if c.LabelIDs == nil {
		c.LabelIDs = []string{}
	}
	return &c
}

func applyDefaults(n *models.Note) {
	if n.LabelIDs == nil {
		n.LabelIDs = []string{}
	}
	if n.Color == "" {
		n.Color = models.DefaultNoteColor
	}
	if n.FontSize == "" {
		n.FontSize = models.DefaultFontSize
	}
}
