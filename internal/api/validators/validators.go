package validators

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// New returns the shared validator instance. validator.Validate caches struct
// metadata, so a single instance is reused across handlers.
func New() *validator.Validate { return v }
