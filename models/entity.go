package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityLabel is the coarse category of a named reference
type EntityLabel string

const (
	EntityLabelCase EntityLabel = "CASE"
	EntityLabelLaw  EntityLabel = "LAW"
)

// Known reports whether the label is one of the canonical categories.
func (l EntityLabel) Known() bool {
	return l == EntityLabelCase || l == EntityLabelLaw
}

// Entity represents a named reference (law or case citation) owned by a document.
// Labels coming from ingestion sidecars are stored verbatim, so values outside
// the two canonical constants can occur.
type Entity struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
