// Package store defines the storage-hook contract the document layer
// persists through. The core depends only on this narrow interface,
// never on a particular storage engine; implementations live in
// internal/io* packages and are injected through a connection manager's
// Dialer.
package store

import (
	"context"
	"errors"
)

// Fields is the coerced field set of one document, exchanged with
// storage hooks.
type Fields map[string]any

// ErrNotFound reports a lookup of an identity the store does not hold.
var ErrNotFound = errors.New("document not found")

// Store is the storage-hook contract.
//
// Design rationale:
// - Persist carries the identity as an explicit argument so a save of an
//   already persisted document updates in place instead of allocating a
//   new record.
// - Delete is idempotent; removing an absent identity must not fail.
// - The interface is deliberately minimal: querying, indexing and
//   migrations belong to the storage engine behind it, not here.
type Store interface {
	// Persist writes the fields of one document under a kind. An empty
	// id allocates a new identity; a non-empty id upserts under that
	// identity. Returns the identity the document is stored under.
	Persist(ctx context.Context, kind, id string, fields Fields) (string, error)

	// Lookup returns the stored fields for an identity, or ErrNotFound.
	Lookup(ctx context.Context, kind, id string) (Fields, error)

	// Delete removes a document by identity. Absent identities are not
	// an error.
	Delete(ctx context.Context, kind, id string) error
}

// Closer is an optional capability of stores holding external
// resources. A connection manager tears such stores down through it
// when closing.
type Closer interface {
	Close(ctx context.Context) error
}
