// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlank is a validation function that checks if the field value still has
// content after leading and trailing whitespace is removed.
// It returns true if the trimmed field value is not empty, and false otherwise.
func NotBlank(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return strings.TrimSpace(value) != ""
}

// New returns a validator with the application's custom validations registered.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("notblank", validator.Func(NotBlank))
	return validate
}
