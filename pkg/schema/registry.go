package schema

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds field definitions per document kind. The zero value is
// not usable; create one with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string][]FieldDefinition
	order []string
}

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string][]FieldDefinition),
	}
}

// Register stores field definitions under a document kind. Field names
// must be unique within the schema; a duplicate fails the whole
// registration with *DuplicateFieldError. Registering a kind again
// replaces the previous definitions (last-write-wins); callers must not
// rely on stacking.
func (r *Registry) Register(kind string, fields []FieldDefinition) error {
	if kind == "" {
		return fmt.Errorf("document kind cannot be empty")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, fd := range fields {
		if fd.Name == "" {
			return fmt.Errorf("schema %q has a field without a name", kind)
		}
		if _, ok := seen[fd.Name]; ok {
			return &DuplicateFieldError{Kind: kind, Field: fd.Name}
		}
		seen[fd.Name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[kind]; !ok {
		r.order = append(r.order, kind)
	}
	r.kinds[kind] = slices.Clone(fields)
	return nil
}

// Lookup returns a copy of the definitions registered under kind, in
// declaration order. Unregistered kinds fail with *UnknownKindError.
func (r *Registry) Lookup(kind string) ([]FieldDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.kinds[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}
	return slices.Clone(fields), nil
}

// Kinds returns registered kind names in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}
