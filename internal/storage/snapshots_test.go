package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/common"
	"github.com/patrio-app/patrio/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "patrio.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expenses := []model.Expense{
		{ID: "g1", Name: "Alquiler", Amount: 950, Paid: true, Active: true},
		{ID: "g2", Name: "Luz", Amount: 80, Active: true},
	}

	require.NoError(t, store.SaveSnapshot(ctx, "gestionables", "main", expenses))

	var got []model.Expense
	snap, err := store.LoadSnapshot(ctx, "gestionables", "main", &got)
	require.NoError(t, err)

	assert.Equal(t, "gestionables", snap.Domain)
	assert.Equal(t, "main", snap.Backend)
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.FetchedAt.IsZero())

	require.Len(t, got, 2)
	assert.Equal(t, "Alquiler", got[0].Name)
	assert.Equal(t, 80.0, got[1].Amount)
}

func TestLoadSnapshotMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSnapshot(context.Background(), "patrimonio", "main", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "ingresos", "main", []model.Income{{ID: "i1"}}))
	first, err := store.LoadSnapshot(ctx, "ingresos", "main", nil)
	require.NoError(t, err)

	require.NoError(t, store.SaveSnapshot(ctx, "ingresos", "main", []model.Income{{ID: "i2"}, {ID: "i3"}}))

	var got []model.Income
	second, err := store.LoadSnapshot(ctx, "ingresos", "main", &got)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, got, 2)
}

func TestSnapshotsAreScopedByBackend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "patrimonio", "main", []model.Property{{ID: "p1"}}))
	require.NoError(t, store.SaveSnapshot(ctx, "patrimonio", "sandbox", []model.Property{{ID: "p2"}}))

	var main []model.Property
	_, err := store.LoadSnapshot(ctx, "patrimonio", "main", &main)
	require.NoError(t, err)
	require.Len(t, main, 1)
	assert.Equal(t, "p1", main[0].ID)

	require.NoError(t, store.DeleteSnapshots(ctx, "sandbox"))

	_, err = store.LoadSnapshot(ctx, "patrimonio", "sandbox", nil)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.LoadSnapshot(ctx, "patrimonio", "main", nil)
	assert.NoError(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}
