// Package iomem implements the storage hook in process memory.
// Intended for tests and ephemeral use; nothing survives the process.
package iomem

import (
	"context"
	"maps"
	"sync"

	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/store"
)

// Option configures the memory store.
type Option func(*memStore)

// OptNewID replaces the identity allocator used when Persist is called
// with an empty id. Default is store.NewID (random UUID).
func OptNewID(fn func() string) Option {
	return func(s *memStore) {
		s.newID = fn
	}
}

// memStore keeps documents in a map of maps guarded by one RWMutex.
// Field sets are copied on the way in and out, so callers cannot
// mutate stored state through retained references.
type memStore struct {
	mu    sync.RWMutex
	docs  map[string]map[string]store.Fields
	newID func() string
}

// New creates an empty in-memory store.
func New(opts ...Option) store.Store {
	res := &memStore{
		docs:  make(map[string]map[string]store.Fields),
		newID: store.NewID,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// NewDialer returns a conn.Dialer producing a fresh memory store. The
// address is ignored.
func NewDialer(opts ...Option) conn.Dialer {
	return func(_ context.Context, _ string) (store.Store, error) {
		return New(opts...), nil
	}
}

func (s *memStore) Persist(
	ctx context.Context,
	kind, id string,
	fields store.Fields,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = s.newID()
	}
	kindDocs, ok := s.docs[kind]
	if !ok {
		kindDocs = make(map[string]store.Fields)
		s.docs[kind] = kindDocs
	}
	cp := make(store.Fields, len(fields))
	maps.Copy(cp, fields)
	kindDocs[id] = cp
	return id, nil
}

func (s *memStore) Lookup(
	ctx context.Context,
	kind, id string,
) (store.Fields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[kind][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	res := make(store.Fields, len(fields))
	maps.Copy(res, fields)
	return res, nil
}

func (s *memStore) Delete(
	ctx context.Context,
	kind, id string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[kind], id)
	return nil
}
