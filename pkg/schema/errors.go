package schema

import "fmt"

// DuplicateFieldError is returned by Register when two fields of one
// schema share a name.
type DuplicateFieldError struct {
	Kind  string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q in schema %q", e.Field, e.Kind)
}

// UnknownKindError is returned when a document kind was never
// registered.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown document kind %q", e.Kind)
}
