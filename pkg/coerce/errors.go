package coerce

import (
	"fmt"

	"github.com/gnames/gnmodel/pkg/schema"
)

// CastError reports a raw value that cannot be converted to the
// declared type of a field.
type CastError struct {
	Type  schema.Type
	Path  string
	Value any
}

func (e *CastError) Error() string {
	return fmt.Sprintf(
		"Cast to %s failed for value %q at path %q",
		e.Type, fmt.Sprint(e.Value), e.Path,
	)
}

// RequiredError reports an absent required field without a default.
type RequiredError struct {
	Path string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("Path `%s` is required.", e.Path)
}
