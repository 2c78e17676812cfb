// Package document implements the mutable in-memory representation of
// one record bound to a schema.
//
// A Document collects raw values lazily and defers coercion and
// validation to save time. Field-level failures never abort sibling
// fields; a failed save attaches the aggregate to the document and
// reports it as *ValidationError. Persistence goes through the Backend
// the document was created with; the document itself never touches a
// storage engine.
package document

import (
	"context"
	"maps"
	"sync"

	"github.com/gnames/gnmodel/pkg/coerce"
	"github.com/gnames/gnmodel/pkg/schema"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/gnames/gnmodel/pkg/validate"
)

// Backend persists and deletes documents. It is implemented by a bound
// model; documents hold it as a non-owning reference.
type Backend interface {
	// Persist writes coerced fields under a kind. An empty id
	// allocates a new identity; a non-empty id updates in place.
	Persist(
		ctx context.Context, kind, id string, fields store.Fields,
	) (string, error)

	// Delete removes a persisted document by identity.
	Delete(ctx context.Context, kind, id string) error
}

// Document is one record bound to a schema kind. Safe for concurrent
// use; operations on one Document are serialized by its own mutex,
// saves of different documents run concurrently.
type Document struct {
	mu      sync.Mutex
	kind    string
	fields  []schema.FieldDefinition
	backend Backend

	id string

	// raw holds values set by the caller, uncoerced.
	raw map[string]any
	// defaults holds values materialized from default producers at
	// creation; they are trusted and skip coercion.
	defaults map[string]any
	// coerced holds the result of the last successful save or load.
	coerced map[string]any
	// errs holds per-field errors from the last failed save.
	errs map[string]error
}

// New creates a Document of the given kind. Default producers are
// invoked once, here; nothing is coerced yet.
func New(
	kind string,
	fields []schema.FieldDefinition,
	backend Backend,
) *Document {
	res := &Document{
		kind:     kind,
		fields:   fields,
		backend:  backend,
		raw:      make(map[string]any),
		defaults: make(map[string]any),
		coerced:  make(map[string]any),
		errs:     make(map[string]error),
	}
	for _, fd := range fields {
		if fd.Default != nil {
			res.defaults[fd.Name] = fd.Default()
		}
	}
	return res
}

// Set stores a raw value for a field. No coercion happens here; the
// value is checked at save time. Setting nil clears the raw value, so
// a declared default applies again.
func (d *Document) Set(name string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == nil {
		delete(d.raw, name)
		return
	}
	d.raw[name] = value
}

// Get returns the current value of a field: the raw value if one was
// set, otherwise the last coerced or loaded value, otherwise the
// materialized default.
func (d *Document) Get(name string) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.raw[name]; ok {
		return v
	}
	if v, ok := d.coerced[name]; ok {
		return v
	}
	return d.defaults[name]
}

// Save coerces and validates every schema field in declaration order,
// collecting all per-field failures. A non-empty aggregate replaces
// the document's error map and fails the save with *ValidationError;
// nothing is persisted. Otherwise the coerced values go to the backend,
// the document records its identity and the error map is cleared.
// Every attempt starts by discarding the previous error map.
func (d *Document) Save(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = make(map[string]error)

	candidate := make(schema.Values, len(d.fields))
	errs := make(map[string]error)
	var failed []string

	// Coercion pass. A field with a raw value is coerced; without one
	// it falls back to the last loaded value, then to the materialized
	// default, and only then to the absent-value rules (required check).
	for _, fd := range d.fields {
		if raw, ok := d.raw[fd.Name]; ok {
			v, err := coerce.Coerce(fd, raw)
			if err != nil {
				errs[fd.Name] = err
				failed = append(failed, fd.Name)
				continue
			}
			candidate[fd.Name] = v
			continue
		}
		if v, ok := d.coerced[fd.Name]; ok {
			candidate[fd.Name] = v
			continue
		}
		if v, ok := d.defaults[fd.Name]; ok {
			candidate[fd.Name] = v
			continue
		}
		v, err := coerce.Coerce(fd, nil)
		if err != nil {
			errs[fd.Name] = err
			failed = append(failed, fd.Name)
			continue
		}
		if v != nil {
			candidate[fd.Name] = v
		}
	}

	// Validation pass. A field with a coercion error is not checked;
	// the coercion error is the sole reported error for that field.
	// Absent values are not validated either: required-ness is the
	// coercion pass's concern.
	for _, fd := range d.fields {
		if _, ok := errs[fd.Name]; ok {
			continue
		}
		v, ok := candidate[fd.Name]
		if !ok || v == nil {
			continue
		}
		if err := validate.Run(fd, v, candidate); err != nil {
			errs[fd.Name] = err
			failed = append(failed, fd.Name)
		}
	}

	if len(errs) > 0 {
		d.errs = errs
		return &ValidationError{
			Kind:   d.kind,
			Fields: orderFields(d.fields, failed),
			Errors: errs,
		}
	}

	fields := make(store.Fields, len(candidate))
	maps.Copy(fields, candidate)
	id, err := d.backend.Persist(ctx, d.kind, d.id, fields)
	if err != nil {
		return err
	}
	d.id = id
	d.coerced = candidate
	d.raw = make(map[string]any)
	return nil
}

// Remove deletes the document from the store by identity. Removing a
// document that was never persisted is a no-op, not an error.
func (d *Document) Remove(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.id == "" {
		return nil
	}
	if err := d.backend.Delete(ctx, d.kind, d.id); err != nil {
		return err
	}
	d.id = ""
	return nil
}

// Hydrate replaces the document's identity and coerced values with
// ones loaded from the store. Raw values and errors are discarded.
// Used by models when loading persisted documents.
func (d *Document) Hydrate(id string, values store.Fields) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.id = id
	d.coerced = make(map[string]any, len(values))
	maps.Copy(d.coerced, values)
	d.raw = make(map[string]any)
	d.errs = make(map[string]error)
}

// ID returns the identity the document is persisted under, empty for
// a document never saved.
func (d *Document) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// IsNew reports whether the document was never persisted.
func (d *Document) IsNew() bool {
	return d.ID() == ""
}

// Kind returns the document kind.
func (d *Document) Kind() string {
	return d.kind
}

// Fields returns a copy of the coerced values of the last successful
// save or load.
func (d *Document) Fields() store.Fields {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := make(store.Fields, len(d.coerced))
	maps.Copy(res, d.coerced)
	return res
}

// Errs returns a copy of the per-field errors of the last failed save.
// Empty after a successful save.
func (d *Document) Errs() map[string]error {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := make(map[string]error, len(d.errs))
	maps.Copy(res, d.errs)
	return res
}

// Err returns the error of one field from the last failed save, nil if
// the field is currently valid.
func (d *Document) Err(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs[name]
}

// orderFields returns failed field names in schema declaration order.
func orderFields(
	fields []schema.FieldDefinition,
	failed []string,
) []string {
	set := make(map[string]struct{}, len(failed))
	for _, name := range failed {
		set[name] = struct{}{}
	}
	res := make([]string, 0, len(failed))
	for _, fd := range fields {
		if _, ok := set[fd.Name]; ok {
			res = append(res, fd.Name)
		}
	}
	return res
}
