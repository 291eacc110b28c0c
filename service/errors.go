package service

import "fmt"

// InsufficientDataError reports a computation that received fewer
// observations than it needs.
type InsufficientDataError struct {
	Operation string
	Required  int
	Got       int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d observations, got %d", e.Operation, e.Required, e.Got)
}

// InvalidInputError reports a caller-supplied value the engine rejects.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
