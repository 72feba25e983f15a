package service

import (
	"errors"
	"fmt"
)

// Error taxonomy of the core. Handlers translate these into HTTP codes;
// anything else is an infrastructure failure and becomes a 500.
var (
	// ErrForbidden marks a wrong-role or non-owner attempt. Rejected
	// before any mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks an unknown record, reported distinctly from an
	// authorization failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a validation failure, rejected before
	// persistence.
	ErrInvalidInput = errors.New("invalid input")
)

// DuplicateListingError signals a creation attempt that collided with an
// existing active listing. The attempt has already been logged as a
// DuplicateListing audit record; the property itself was not created.
type DuplicateListingError struct {
	ExistingPropertyID uint
}

func (e *DuplicateListingError) Error() string {
	return fmt.Sprintf("duplicate of existing listing %d", e.ExistingPropertyID)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
