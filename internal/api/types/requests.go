package types

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SectionConfig struct {
	Heading string `json:"heading" validate:"required"`
}

type ProjectCreateRequest struct {
	Title    string          `json:"title" validate:"required"`
	Topic    string          `json:"topic" validate:"required"`
	DocType  string          `json:"doc_type" validate:"required,oneof=word ppt"`
	Sections []SectionConfig `json:"sections" validate:"required,min=1,dive"`
	// Config is opaque metadata persisted and returned verbatim.
	Config json.RawMessage `json:"config,omitempty"`
}

type GenerateRequest struct {
	Regenerate bool `json:"regenerate"`
}

type RefineRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type FeedbackRequest struct {
	IsPositive *bool   `json:"is_positive"`
	Comment    *string `json:"comment"`
}
