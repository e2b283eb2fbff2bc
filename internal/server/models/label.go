package models

// DefaultLabelColor is used when a label is created or updated without a
// color token.
const DefaultLabelColor = "#3B82F6"

// Label is a user-owned tag for notes. Names are not required to be unique.
type Label struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// LabelUpdate is a partial update: nil fields keep their stored value.
// An explicitly empty Color normalizes to DefaultLabelColor.
type LabelUpdate struct {
	Name  *string
	Color *string
}
