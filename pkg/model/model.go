// Package model binds a registered schema kind to a live connection,
// producing document factories and persistence operations.
package model

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmodel/pkg/coerce"
	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/document"
	"github.com/gnames/gnmodel/pkg/schema"
	"github.com/gnames/gnmodel/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Option configures a Model.
type Option func(*Model)

// OptLogger sets a logger for bulk-operation reporting. Without one
// the model is silent.
func OptLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// OptJobsNumber sets the number of concurrent workers SaveMany uses.
// Default is runtime.NumCPU().
func OptJobsNumber(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.jobs = n
		}
	}
}

// Model is a schema kind bound to a connection manager. It implements
// document.Backend, routing persistence through the manager so
// operations fail cleanly when the connection goes away.
type Model struct {
	kind   string
	fields []schema.FieldDefinition
	mgr    *conn.Manager
	logger *slog.Logger
	jobs   int
}

// Bind looks the kind up in the registry and attaches it to the
// manager. Fails with *schema.UnknownKindError when the kind was never
// registered and with *conn.NotConnectedError when the manager is not
// Connected.
func Bind(
	reg *schema.Registry,
	kind string,
	mgr *conn.Manager,
	opts ...Option,
) (*Model, error) {
	fields, err := reg.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if state := mgr.State(); state != conn.Connected {
		return nil, &conn.NotConnectedError{State: state}
	}
	res := &Model{
		kind:   kind,
		fields: fields,
		mgr:    mgr,
		jobs:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// Kind returns the bound document kind.
func (m *Model) Kind() string {
	return m.kind
}

// Create produces a new Document with defaults materialized but
// nothing coerced yet.
func (m *Model) Create() *document.Document {
	return document.New(m.kind, m.fields, m)
}

// CreateWith produces a new Document carrying initial raw values.
func (m *Model) CreateWith(values map[string]any) *document.Document {
	res := m.Create()
	for name, v := range values {
		res.Set(name, v)
	}
	return res
}

// FindByID loads a persisted document. Stored values are re-coerced to
// the schema's declared types on hydration, so timestamps encoded as
// strings by a storage engine come back as time.Time. A missing
// identity fails with store.ErrNotFound.
func (m *Model) FindByID(
	ctx context.Context,
	id string,
) (*document.Document, error) {
	var fields store.Fields
	err := m.mgr.Do(ctx,
		func(ctx context.Context, st store.Store) error {
			var err error
			fields, err = st.Lookup(ctx, m.kind, id)
			return err
		})
	if err != nil {
		return nil, err
	}

	coerced := make(store.Fields, len(fields))
	for _, fd := range m.fields {
		raw, ok := fields[fd.Name]
		if !ok || raw == nil {
			continue
		}
		v, err := coerce.Coerce(fd, raw)
		if err != nil {
			return nil, err
		}
		coerced[fd.Name] = v
	}

	res := m.Create()
	res.Hydrate(id, coerced)
	return res, nil
}

// SaveMany saves documents concurrently on a bounded worker group. The
// first failure cancels the remaining saves and is returned.
func (m *Model) SaveMany(
	ctx context.Context,
	docs ...*document.Document,
) error {
	start := time.Now()
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.jobs)
	for _, doc := range docs {
		g.Go(func() error {
			return doc.Save(gCtx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if m.logger != nil {
		m.logger.Info("saved documents",
			"kind", m.kind,
			"count", humanize.Comma(int64(len(docs))),
			"duration", gnfmt.TimeString(time.Since(start).Seconds()),
		)
	}
	return nil
}

// Persist implements document.Backend through the connection manager.
func (m *Model) Persist(
	ctx context.Context,
	kind, id string,
	fields store.Fields,
) (string, error) {
	var res string
	err := m.mgr.Do(ctx,
		func(ctx context.Context, st store.Store) error {
			var err error
			res, err = st.Persist(ctx, kind, id, fields)
			return err
		})
	return res, err
}

// Delete implements document.Backend through the connection manager.
func (m *Model) Delete(ctx context.Context, kind, id string) error {
	return m.mgr.Do(ctx,
		func(ctx context.Context, st store.Store) error {
			return st.Delete(ctx, kind, id)
		})
}
