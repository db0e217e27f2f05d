package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an entity id cannot be resolved by the kitchen API
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when the pantry already holds the ingredient being added
	ErrConflict = errors.New("ingredient already in pantry")

	// ErrValidation is returned when a form fails local validation before any remote call
	ErrValidation = errors.New("validation failed")

	// ErrTransient is returned for any other kitchen API request failure
	ErrTransient = errors.New("kitchen API request failed")

	// ErrPartialSuccess is returned when the first of two chained mutations succeeded
	// and the second one failed
	ErrPartialSuccess = errors.New("operation partially succeeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects the field problems found while validating a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// PartialSuccessError reports a chained mutation where Completed took effect and Failed did not.
// Nothing is rolled back.
type PartialSuccessError struct {
	Completed string
	Failed    string
	Err       error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%s: %s succeeded, %s failed: %v", ErrPartialSuccess, e.Completed, e.Failed, e.Err)
}

func (e *PartialSuccessError) Unwrap() []error { return []error{ErrPartialSuccess, e.Err} }
