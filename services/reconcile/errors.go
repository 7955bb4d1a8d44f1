package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports missing local input. It is always recovered
// locally and never causes a network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// TransportError wraps a collaborator network/HTTP failure. The caches are
// left unpoisoned; retry is user-initiated.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transportError: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResolutionError means one or more selection keys could not be mapped to a
// backend slot id at submit time. Submission must not proceed.
type ResolutionError struct {
	Unresolved []string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolutionError: cannot determine slot identifiers for: %s",
		strings.Join(e.Unresolved, ", "))
}

var (
	// ErrNotSelectable is returned when a toggle targets a blocked, held or
	// technician-cancelled slot.
	ErrNotSelectable = errors.New("slot is not selectable")
	// ErrNoTechniciansFound is surfaced only on a manual suggestion request
	// that yields an empty result; the debounced automatic path stays silent.
	ErrNoTechniciansFound = errors.New("no technicians found for the requested skills and date")
)
