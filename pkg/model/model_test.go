package model_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gnames/gnmodel/internal/iomem"
	"github.com/gnames/gnmodel/pkg/coerce"
	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/document"
	"github.com/gnames/gnmodel/pkg/model"
	"github.com/gnames/gnmodel/pkg/schema"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notesRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	err := reg.Register("notes", []schema.FieldDefinition{
		{Name: "title", Type: schema.String, Required: true},
		{Name: "priority", Type: schema.Number,
			Default: func() any { return 3.0 }},
		{Name: "created", Type: schema.Timestamp},
	})
	require.NoError(t, err)
	return reg
}

func connectedManager(t *testing.T) *conn.Manager {
	t.Helper()
	mgr := conn.New(iomem.NewDialer())
	mgr.Open("mem://test")
	require.NoError(t, mgr.Ready(context.Background()))
	t.Cleanup(func() {
		mgr.Close(context.Background())
	})
	return mgr
}

func TestBindUnknownKind(t *testing.T) {
	reg := notesRegistry(t)
	mgr := connectedManager(t)

	_, err := model.Bind(reg, "invoices", mgr)
	var uerr *schema.UnknownKindError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "invoices", uerr.Kind)
}

func TestBindNotConnected(t *testing.T) {
	reg := notesRegistry(t)
	mgr := conn.New(iomem.NewDialer())

	_, err := model.Bind(reg, "notes", mgr)
	var nerr *conn.NotConnectedError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, conn.Disconnected, nerr.State)
}

func TestSaveFindRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, err := model.Bind(notesRegistry(t), "notes", connectedManager(t))
	require.NoError(t, err)

	doc := m.CreateWith(map[string]any{
		"title":   "groceries",
		"created": "2026-03-10T12:00:00Z",
	})
	require.NoError(t, doc.Save(ctx))
	require.False(t, doc.IsNew())

	loaded, err := m.FindByID(ctx, doc.ID())
	require.NoError(t, err)
	assert.Equal(t, doc.ID(), loaded.ID())
	assert.Equal(t, "groceries", loaded.Get("title"))
	assert.Equal(t, 3.0, loaded.Get("priority"))
	assert.Equal(t,
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		loaded.Get("created"))

	require.NoError(t, doc.Remove(ctx))
	_, err = m.FindByID(ctx, doc.ID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindByIDRecoercesStoredValues(t *testing.T) {
	// Storage engines that round-trip through JSON hand timestamps
	// back as strings and numbers as float64; hydration restores the
	// schema's declared types.
	ctx := context.Background()
	mgr := connectedManager(t)
	m, err := model.Bind(notesRegistry(t), "notes", mgr)
	require.NoError(t, err)

	var id string
	err = mgr.Do(ctx, func(ctx context.Context, st store.Store) error {
		var err error
		id, err = st.Persist(ctx, "notes", "", store.Fields{
			"title":    "imported",
			"priority": "7",
			"created":  "2026-03-10T12:00:00Z",
		})
		return err
	})
	require.NoError(t, err)

	loaded, err := m.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 7.0, loaded.Get("priority"))
	assert.IsType(t, time.Time{}, loaded.Get("created"))
}

func TestFindByIDBadStoredValue(t *testing.T) {
	ctx := context.Background()
	mgr := connectedManager(t)
	m, err := model.Bind(notesRegistry(t), "notes", mgr)
	require.NoError(t, err)

	var id string
	err = mgr.Do(ctx, func(ctx context.Context, st store.Store) error {
		var err error
		id, err = st.Persist(ctx, "notes", "", store.Fields{
			"title":    "corrupt",
			"priority": "not a number",
		})
		return err
	})
	require.NoError(t, err)

	_, err = m.FindByID(ctx, id)
	var cerr *coerce.CastError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "priority", cerr.Path)
}

func TestSaveMany(t *testing.T) {
	ctx := context.Background()
	m, err := model.Bind(
		notesRegistry(t), "notes", connectedManager(t),
		model.OptJobsNumber(4),
	)
	require.NoError(t, err)

	docs := make([]*document.Document, 20)
	for i := range docs {
		docs[i] = m.CreateWith(map[string]any{
			"title": fmt.Sprintf("note %d", i),
		})
	}
	require.NoError(t, m.SaveMany(ctx, docs...))

	for _, doc := range docs {
		require.False(t, doc.IsNew())
		loaded, err := m.FindByID(ctx, doc.ID())
		require.NoError(t, err)
		assert.Equal(t, doc.Get("title"), loaded.Get("title"))
	}
}

func TestSaveManyFirstErrorWins(t *testing.T) {
	ctx := context.Background()
	m, err := model.Bind(notesRegistry(t), "notes", connectedManager(t))
	require.NoError(t, err)

	good := m.CreateWith(map[string]any{"title": "fine"})
	bad := m.Create() // title is required

	err = m.SaveMany(ctx, good, bad)
	var verr *document.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "title")
}

func TestPersistAfterClose(t *testing.T) {
	ctx := context.Background()
	reg := notesRegistry(t)
	mgr := conn.New(iomem.NewDialer())
	mgr.Open("mem://test")
	require.NoError(t, mgr.Ready(ctx))

	m, err := model.Bind(reg, "notes", mgr)
	require.NoError(t, err)
	require.NoError(t, mgr.Close(ctx))

	doc := m.CreateWith(map[string]any{"title": "late"})
	err = doc.Save(ctx)
	var nerr *conn.NotConnectedError
	require.ErrorAs(t, err, &nerr)
}
