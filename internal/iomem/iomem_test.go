package iomem_test

import (
	"context"
	"testing"

	"github.com/gnames/gnmodel/internal/iomem"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := iomem.New()

	id, err := st.Persist(ctx, "notes", "", store.Fields{
		"title": "groceries",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fields, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "groceries", fields["title"])

	require.NoError(t, st.Delete(ctx, "notes", id))
	_, err = st.Lookup(ctx, "notes", id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Delete is idempotent.
	assert.NoError(t, st.Delete(ctx, "notes", id))
}

func TestPersistWithIdentityUpserts(t *testing.T) {
	ctx := context.Background()
	st := iomem.New()

	id, err := st.Persist(ctx, "notes", "fixed",
		store.Fields{"title": "first"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = st.Persist(ctx, "notes", "fixed",
		store.Fields{"title": "second"})
	require.NoError(t, err)

	fields, err := st.Lookup(ctx, "notes", "fixed")
	require.NoError(t, err)
	assert.Equal(t, "second", fields["title"])
}

func TestKindsAreIsolated(t *testing.T) {
	ctx := context.Background()
	st := iomem.New()

	_, err := st.Persist(ctx, "notes", "shared",
		store.Fields{"title": "a note"})
	require.NoError(t, err)

	_, err = st.Lookup(ctx, "events", "shared")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoredFieldsAreCopied(t *testing.T) {
	ctx := context.Background()
	st := iomem.New()

	in := store.Fields{"title": "original"}
	id, err := st.Persist(ctx, "notes", "", in)
	require.NoError(t, err)
	in["title"] = "mutated"

	out, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "original", out["title"])

	out["title"] = "mutated again"
	again, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "original", again["title"])
}

func TestOptNewID(t *testing.T) {
	ctx := context.Background()
	st := iomem.New(iomem.OptNewID(func() string {
		return store.DeterministicID("notes", "groceries")
	}))

	id1, err := st.Persist(ctx, "notes", "",
		store.Fields{"title": "groceries"})
	require.NoError(t, err)
	assert.Equal(t, store.DeterministicID("notes", "groceries"), id1)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := iomem.New()

	_, err := st.Persist(ctx, "notes", "", store.Fields{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = st.Lookup(ctx, "notes", "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, st.Delete(ctx, "notes", "x"), context.Canceled)
}
