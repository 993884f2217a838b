package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionRevision is an append-only snapshot of a section's content together
// with the instruction that produced it. Prompt is nil for the automatic
// first generation. Rows are never updated or reordered.
type SectionRevision struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;index;not null" json:"section_id" validate:"required"`
	Prompt    *string   `gorm:"type:text" json:"prompt"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
