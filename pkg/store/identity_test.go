package store_test

import (
	"testing"

	"github.com/gnames/gnmodel/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	first := store.NewID()
	second := store.NewID()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestDeterministicID(t *testing.T) {
	first := store.DeterministicID("authors", "Jane Austen")
	again := store.DeterministicID("authors", "Jane Austen")
	other := store.DeterministicID("books", "Jane Austen")

	assert.Len(t, first, 36)
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}
