package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownCollectionIsEmpty(t *testing.T) {
	store := New()
	recs, err := store.Query(context.Background(), "NeverWritten", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCreateQueryRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	rec, err := store.Create(ctx, "Dish", map[string]any{"name": "Congee", "category": "main"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	recs, err := store.Query(ctx, "Dish", docstore.Where{"category": "main"}, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Congee", docstore.String(recs[0].Fields, "name"))

	recs, err = store.Query(ctx, "Dish", docstore.Where{"category": "soup"}, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestWhereByObjectID(t *testing.T) {
	store := New()
	ctx := context.Background()

	rec, err := store.Create(ctx, "Dish", map[string]any{"name": "Congee"})
	require.NoError(t, err)

	recs, err := store.Query(ctx, "Dish", docstore.Where{"objectId": rec.ID}, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestNumericWhereMatchesAcrossTypes(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Create(ctx, "Vote", map[string]any{"value": 1})
	require.NoError(t, err)

	// A JSON round-trip turns the filter value into float64.
	recs, err := store.Query(ctx, "Vote", docstore.Where{"value": float64(1)}, nil)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestUpdateMergesAndTouchesUpdatedAt(t *testing.T) {
	store := New()
	ctx := context.Background()

	now := time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	rec, err := store.Create(ctx, "Vote", map[string]any{"dishId": "d1", "value": 1})
	require.NoError(t, err)

	now = now.Add(time.Minute)
	updated, err := store.Update(ctx, "Vote", rec.ID, map[string]any{"value": -1})
	require.NoError(t, err)

	assert.Equal(t, -1, docstore.Int(updated.Fields, "value"))
	assert.Equal(t, "d1", docstore.String(updated.Fields, "dishId"))
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	_, err = store.Update(ctx, "Vote", "missing", map[string]any{"value": 1})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	rec, err := store.Create(ctx, "Vote", map[string]any{"value": 1})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "Vote", rec.ID))
	assert.ErrorIs(t, store.Delete(ctx, "Vote", rec.ID), docstore.ErrNotFound)

	recs, err := store.Query(ctx, "Vote", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestOrderAndLimit(t *testing.T) {
	store := New()
	ctx := context.Background()

	now := time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, "Recipe", map[string]any{"name": name})
		require.NoError(t, err)
		now = now.Add(time.Minute)
	}

	recs, err := store.Query(ctx, "Recipe", nil, &docstore.Options{Order: "-createdAt", Limit: 2})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", docstore.String(recs[0].Fields, "name"))
	assert.Equal(t, "b", docstore.String(recs[1].Fields, "name"))
}

func TestRecordsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	rec, err := store.Create(ctx, "Dish", map[string]any{"name": "Congee"})
	require.NoError(t, err)
	rec.Fields["name"] = "mutated"

	recs, err := store.Query(ctx, "Dish", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Congee", docstore.String(recs[0].Fields, "name"))
}
