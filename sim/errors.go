package sim

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in *NotFoundError) when a trigger id does not
// resolve to a known component.
var ErrNotFound = errors.New("component not found")

// NotFoundError identifies the id that failed to resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("trigger %q: %v", e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
