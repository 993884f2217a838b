package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Document kinds a project can target.
const (
	DocTypeWord = "word"
	DocTypePPT  = "ppt"
)

// Project generation lifecycle states. Transitions only ever run
// draft -> generating -> ready.
const (
	StatusDraft      = "draft"
	StatusGenerating = "generating"
	StatusReady      = "ready"
)

// Project represents a document project owned by a user: a Word document
// or a slide deck built from ordered sections.
type Project struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`
	Title   string    `gorm:"not null" json:"title" validate:"required"`
	Topic   string    `gorm:"not null" json:"topic" validate:"required"`
	DocType string    `gorm:"type:varchar(16);not null" json:"doc_type" validate:"required,oneof=word ppt"`
	Status  string    `gorm:"type:varchar(16);not null;default:draft" json:"status" validate:"oneof=draft generating ready"`
	// Config is an opaque metadata blob round-tripped verbatim; the lifecycle
	// manager never interprets its contents.
	Config    datatypes.JSON `gorm:"type:jsonb" json:"config"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Sections []Section `gorm:"foreignKey:ProjectID" json:"sections,omitempty"`
}
