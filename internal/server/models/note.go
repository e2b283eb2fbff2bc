package models

import (
	"time"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
)

// Defaults applied at note creation when the caller leaves them unset.
const (
	DefaultNoteColor = "#ffffff"
	DefaultFontSize  = "normal"
)

// Note is a short text note owned by exactly one user. UserID is immutable
// after creation and is the basis of every authorization check.
type Note struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Summary  string   `json:"summary,omitempty"`
	Pinned   bool     `json:"pinned"`
	Archived bool     `json:"archived"`
	LabelIDs []string `json:"labelIds"`
	Color    string   `json:"backgroundColor"`
	FontSize string   `json:"fontSize"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// SummaryError is set when an on-save summary request failed after the
	// note was already persisted. It is never stored.
	SummaryError string `json:"summaryError,omitempty"`
}

// NoteUpdate is a partial update: nil fields keep their stored value.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Summary  *string
	Pinned   *bool
	Archived *bool
	LabelIDs *[]string
	Color    *string
	FontSize *string
}

// HasLabel reports label membership after identifier normalization.
func (n *Note) HasLabel(labelID string) bool {
	for _, id := range n.LabelIDs {
		if common.SameID(id, labelID) {
			return true
		}
	}
	return false
}
