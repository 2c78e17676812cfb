package document

import (
	"fmt"
	"strings"
)

// ValidationError aggregates the per-field failures of one save
// attempt. Errors maps field name to the coercion or validation error
// of that field; Fields holds the same names in schema declaration
// order. Callers inspecting individual failures use errors.As against
// the wrapped field errors.
type ValidationError struct {
	Kind   string
	Fields []string
	Errors map[string]error
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, name := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Errors[name])
	}
	return fmt.Sprintf(
		"%s validation failed: %s",
		e.Kind, strings.Join(parts, ", "),
	)
}

// Unwrap exposes the field errors, in declaration order, to errors.Is
// and errors.As.
func (e *ValidationError) Unwrap() []error {
	res := make([]error, len(e.Fields))
	for i, name := range e.Fields {
		res[i] = e.Errors[name]
	}
	return res
}
