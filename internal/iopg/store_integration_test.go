package iopg_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gnmodel/internal/iopg"
	"github.com/gnames/gnmodel/internal/iotesting"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestDB connects to the gnmodel_test database, skipping the test
// when PostgreSQL is not available.
func dialTestDB(t *testing.T) store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	st, err := iopg.Dial(context.Background(), iotesting.PostgresDSN())
	if err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() {
		st.(store.Closer).Close(context.Background())
	})
	return st
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := dialTestDB(t)

	id, err := st.Persist(ctx, "notes", "", store.Fields{
		"title":    "groceries",
		"priority": 3.0,
		"pinned":   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	defer st.Delete(ctx, "notes", id)

	fields, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "groceries", fields["title"])
	assert.Equal(t, 3.0, fields["priority"])
	assert.Equal(t, true, fields["pinned"])

	require.NoError(t, st.Delete(ctx, "notes", id))
	_, err = st.Lookup(ctx, "notes", id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Delete is idempotent.
	assert.NoError(t, st.Delete(ctx, "notes", id))
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	st := dialTestDB(t)

	id := store.DeterministicID("notes", "upsert-test")
	defer st.Delete(ctx, "notes", id)

	_, err := st.Persist(ctx, "notes", id,
		store.Fields{"title": "first"})
	require.NoError(t, err)
	_, err = st.Persist(ctx, "notes", id,
		store.Fields{"title": "second"})
	require.NoError(t, err)

	fields, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "second", fields["title"])
}

func TestTimestampsSurviveAsStrings(t *testing.T) {
	ctx := context.Background()
	st := dialTestDB(t)

	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	id, err := st.Persist(ctx, "notes", "",
		store.Fields{"created": created})
	require.NoError(t, err)
	defer st.Delete(ctx, "notes", id)

	fields, err := st.Lookup(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10T12:00:00Z", fields["created"])
}
