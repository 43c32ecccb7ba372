package service

import (
	"errors"
	"sort"
	"strings"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the request conflicts with current state
	ErrConflict = errors.New("resource conflict")

	// ErrValidationFailed is returned when budget lines fail their review rules
	ErrValidationFailed = errors.New("validation failed")

	// ErrPersistence is returned when saving to the database fails
	ErrPersistence = errors.New("failed to persist budget lines")
)

// ValidationError carries rule failures keyed by field. It matches
// ErrValidationFailed with errors.Is.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
