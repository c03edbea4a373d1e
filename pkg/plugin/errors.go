package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDescriptor is returned when a descriptor has no entries and so no name can be derived.
	ErrEmptyDescriptor = errors.New("plugin: descriptor has no entries")
	// ErrInvalidSpec is returned for a Spec that is neither a name nor a descriptor.
	ErrInvalidSpec = errors.New("plugin: spec is neither a name nor a descriptor")
	// ErrUnknownPlugin is returned by Registry.New for an unregistered capability id.
	ErrUnknownPlugin = errors.New("plugin: unknown plugin")
)

// ClassifyError identifies the entry that could not be classified.
type ClassifyError struct {
	// Err is the underlying error.
	Err error
	// Index is the position of the offending entry in the input.
	Index int
	// Kind is the set being classified.
	Kind SetKind
	// Spec is the offending entry.
	Spec Spec
}

// Error implements the error interface.
func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify %s[%d] %s: %v", e.Kind, e.Index, e.Spec, e.Err)
}

func (e *ClassifyError) Unwrap() error {
	return e.Err
}
