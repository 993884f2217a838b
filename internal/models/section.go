package models

import (
	"time"

	"github.com/google/uuid"
)

// Section is one heading+content unit within a project: a paragraph group
// for Word documents, a slide for decks. Position is zero-based and unique
// within a project; it defines display and export order.
type Section struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_sections_project_position,unique" json:"project_id" validate:"required"`
	Position  int       `gorm:"not null;index:idx_sections_project_position,unique" json:"position" validate:"gte=0"`
	Heading   string    `gorm:"not null" json:"heading" validate:"required"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Revisions []SectionRevision `gorm:"foreignKey:SectionID" json:"revisions,omitempty"`
	Feedback  []SectionFeedback `gorm:"foreignKey:SectionID" json:"feedback,omitempty"`
}
