package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionFeedback is a user-supplied reaction to a section, independent of
// its content. IsPositive is tri-state: thumbs up, thumbs down, or unset.
// Append-only.
type SectionFeedback struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SectionID  uuid.UUID `gorm:"type:uuid;index;not null" json:"section_id" validate:"required"`
	IsPositive *bool     `json:"is_positive"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides gorm's pluralization ("section_feedbacks").
func (SectionFeedback) TableName() string { return "section_feedback" }
