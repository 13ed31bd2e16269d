package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns the validator used for inbound request shapes.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
