package labels

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// MemoryRepository is the volatile backend.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[string]*models.Label
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*models.Label{}}
}

func (r *MemoryRepository) Create(ctx context.Context, label *models.Label) (*models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *label
	stored.ID = strconv.FormatInt(r.nextID, 10)
	stored.UserID = common.CanonicalID(label.UserID)
	if stored.Color == "" {
		stored.Color = models.DefaultLabelColor
	}
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[common.CanonicalID(id)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *l
	return &out, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.Label{}
	for _, l := range r.byID {
		if common.SameID(l.UserID, ownerID) {
			c := *l
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.LabelUpdate) (*models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[common.CanonicalID(id)]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Color != nil {
		l.Color = *patch.Color
	}
	if l.Color == "" {
		l.Color = models.DefaultLabelColor
	}

	out := *l
	return &out, nil
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
