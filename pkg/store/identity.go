package store

import (
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// NewID returns a random document identity (UUID v4).
func NewID() string {
	return uuid.NewString()
}

// DeterministicID returns the identity a (kind, key) pair always maps
// to (UUID v5). Useful for stores that must keep identities stable
// across re-imports of the same data.
func DeterministicID(kind, key string) string {
	return gnuuid.New(kind + "/" + key).String()
}
