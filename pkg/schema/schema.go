// Package schema defines document kinds: named, ordered sets of field
// definitions with declared types, defaults, required flags and
// validation rules.
//
// Definitions are pure data. The registry is safe for concurrent use;
// definition slices are copied on registration and lookup, so a
// registered schema cannot be mutated through retained references.
package schema

import (
	"fmt"
)

// Type is the declared type of a document field.
// The zero value is String.
type Type int

const (
	String Type = iota
	Number
	Boolean
	Timestamp
)

// String implements fmt.Stringer. The labels appear verbatim in cast
// error messages, so they are part of the external contract.
func (t Type) String() string {
	switch t {
	case Number:
		return "Number"
	case Boolean:
		return "Boolean"
	case Timestamp:
		return "Timestamp"
	default:
		return "String"
	}
}

// TypeFromString converts a type tag like "number" or "timestamp" to a
// Type. An empty tag means String. Used by YAML-declared definitions.
func TypeFromString(s string) (Type, error) {
	switch s {
	case "string", "":
		return String, nil
	case "number":
		return Number, nil
	case "boolean":
		return Boolean, nil
	case "timestamp":
		return Timestamp, nil
	default:
		return String, fmt.Errorf("unknown field type %q", s)
	}
}

// Values is a candidate document view handed to validators: field name
// to coerced value. Cross-field rules read sibling values from it.
type Values map[string]any

// Validator is a declared field rule: a predicate over the coerced
// value and the candidate document, and a message template. Templates
// may use {VALUE} and {PATH} placeholders.
type Validator struct {
	Valid   func(value any, doc Values) bool
	Message string
}

// FieldDefinition describes one field of a document kind.
type FieldDefinition struct {
	// Name is unique within a schema.
	Name string

	// Type is the declared field type.
	Type Type

	// Required fields must carry a value or a default at save time.
	Required bool

	// Default produces a value for fields that have none. The produced
	// value is trusted as-is and skips coercion.
	Default func() any

	// Validators run in declaration order after successful coercion.
	Validators []Validator
}
