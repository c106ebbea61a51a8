package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a legal case record extracted from a court ruling
type Document struct {
	ID            uuid.UUID  `json:"id"`
	ProcessNumber string     `json:"process_number"`
	Tribunal      string     `json:"tribunal"`
	Summary       string     `json:"summary"`
	Decision      string     `json:"decision"`
	Date          *time.Time `json:"date,omitempty"`
	Descriptors   string     `json:"descriptors"`
	MainText      string     `json:"main_text"`
	SourcePath    *string    `json:"source_path,omitempty"`
	Entities      []*Entity  `json:"entities,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
