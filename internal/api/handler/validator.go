package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate on bound request structs.
type requestValidator struct {
	validate *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator.
func NewValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// Validate checks i against its struct tags and flattens any violations into
// a single readable error.
func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = describe(v)
	}
	return errors.New(strings.Join(parts, ", "))
}

func describe(v validator.FieldError) string {
	field := strings.ToLower(v.Field())
	switch v.Tag() {
	case "required":
		return field + ": is required"
	case "email":
		return field + ": must be a valid email address"
	case "min":
		return fmt.Sprintf("%s: must have at least %s characters", field, v.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", field, v.Param())
	default:
		return fmt.Sprintf("%s: invalid (%s)", field, v.Tag())
	}
}
