package models

import (
	"encoding/json"
	"time"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// SavedFilter is a named filter tree stored in the database.
type SavedFilter struct {
	ID        string // UUID
	Name      string // Unique
	Filter    filter.Filter
	CreatedAt time.Time
	UpdatedAt time.Time
}

// savedFilterJSON is the API shape of a SavedFilter.
type savedFilterJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Filter    json.RawMessage `json:"filter"`
	Summary   string          `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MarshalJSON encodes the filter tree in its serialized form.
func (s *SavedFilter) MarshalJSON() ([]byte, error) {
	data, err := filter.Marshal(s.Filter)
	if err != nil {
		return nil, err
	}
	return json.Marshal(savedFilterJSON{
		ID:        s.ID,
		Name:      s.Name,
		Filter:    data,
		Summary:   s.Filter.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
}
