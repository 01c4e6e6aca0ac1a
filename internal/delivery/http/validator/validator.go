// Package validator adapts go-playground/validator to echo's Validator
// interface and renders failures as field-keyed messages.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldErrors maps a form field to its validation messages, mirroring
// what the admin UI expects next to each input.
type FieldErrors map[string][]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, messages := range fe {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}

	return strings.Join(parts, ", ")
}

// Validator wraps a single validator instance for echo.
type Validator struct {
	validate *validator.Validate
}

// New is the constructor for Validator.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Struct-level failures come back as
// FieldErrors so handlers can surface them per field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return errors.WithStack(err)
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errors.WithStack(err)
	}

	fields := FieldErrors{}
	for _, violation := range violations {
		field := fieldName(violation)
		fields[field] = append(fields[field], message(violation))
	}

	return fields
}

// fieldName lowercases the first rune so messages key on the JSON form
// field, not the Go struct field.
func fieldName(violation validator.FieldError) string {
	name := violation.Field()
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}

func message(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return capitalize(fieldName(violation)) + " field is required"
	case "min":
		return capitalize(fieldName(violation)) + " is too short"
	case "max":
		return capitalize(fieldName(violation)) + " is too long"
	default:
		return capitalize(fieldName(violation)) + " is invalid"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
