package api

import "github.com/go-playground/validator/v10"

// requestValidator adapts go-playground/validator to echo's Validator
// interface. Request structs declare their shape rules via validate
// tags.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
