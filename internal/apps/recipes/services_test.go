package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/docstore/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValidation(t *testing.T) {
	svc := NewService(memstore.New())
	ctx := context.Background()

	_, err := svc.Create(ctx, "user_a", "  ", []Ingredient{{Name: "egg"}}, []string{"fry"})
	assert.ErrorIs(t, err, ErrNameRequired)

	// Blank ingredient rows are dropped; nothing left means rejection.
	_, err = svc.Create(ctx, "user_a", "Fried Egg", []Ingredient{{Name: "  ", Qty: "2"}}, []string{"fry"})
	assert.ErrorIs(t, err, ErrNoIngredients)

	_, err = svc.Create(ctx, "user_a", "Fried Egg", []Ingredient{{Name: "egg"}}, []string{" ", ""})
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestCreateDropsBlankRows(t *testing.T) {
	svc := NewService(memstore.New())

	recipe, err := svc.Create(context.Background(), "user_a", " Fried Egg ",
		[]Ingredient{{Name: "egg", Qty: "2"}, {Name: "", Qty: "ghost"}},
		[]string{"beat", "", "fry"})
	require.NoError(t, err)

	assert.Equal(t, "Fried Egg", recipe.Name)
	assert.Equal(t, "user_a", recipe.AuthorID)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, Ingredient{Name: "egg", Qty: "2"}, recipe.Ingredients[0])
	assert.Equal(t, []string{"beat", "fry"}, recipe.Steps)
}

func TestListNewestFirstWithSupports(t *testing.T) {
	store := memstore.New()
	svc := NewService(store)
	ctx := context.Background()

	now := time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })
	first, err := svc.Create(ctx, "user_a", "Congee", []Ingredient{{Name: "rice"}}, []string{"simmer"})
	require.NoError(t, err)
	now = now.Add(time.Minute)
	second, err := svc.Create(ctx, "user_b", "Dumplings", []Ingredient{{Name: "flour"}}, []string{"fold"})
	require.NoError(t, err)

	created, err := svc.Support(ctx, first.ID, "user_b")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = svc.Support(ctx, first.ID, "user_c")
	require.NoError(t, err)
	assert.True(t, created)

	views, err := svc.List(ctx, "user_b")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
	assert.Equal(t, 2, views[1].Supports)
	assert.True(t, views[1].ViewerSupported)
	assert.False(t, views[0].ViewerSupported)
}

func TestSupportIsIdempotent(t *testing.T) {
	store := memstore.New()
	svc := NewService(store)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, "user_a", "Congee", []Ingredient{{Name: "rice"}}, []string{"simmer"})
	require.NoError(t, err)

	created, err := svc.Support(ctx, recipe.ID, "user_b")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Support(ctx, recipe.ID, "user_b")
	require.NoError(t, err)
	assert.False(t, created)

	markers, err := store.Query(ctx, docstore.CollectionRecipeSupport, nil, nil)
	require.NoError(t, err)
	assert.Len(t, markers, 1)
}

func TestSupportUnknownRecipe(t *testing.T) {
	svc := NewService(memstore.New())
	_, err := svc.Support(context.Background(), "missing", "user_a")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestDeleteAuthorization(t *testing.T) {
	store := memstore.New()
	svc := NewService(store)
	ctx := context.Background()

	recipe, err := svc.Create(ctx, "user_a", "Congee", []Ingredient{{Name: "rice"}}, []string{"simmer"})
	require.NoError(t, err)
	_, err = svc.Support(ctx, recipe.ID, "user_b")
	require.NoError(t, err)

	err = svc.Delete(ctx, recipe.ID, "user_b", false)
	assert.ErrorIs(t, err, ErrNotAuthor)

	// Admin may delete anyone's recipe; support markers go with it.
	err = svc.Delete(ctx, recipe.ID, "user_b", true)
	require.NoError(t, err)

	rows, err := store.Query(ctx, docstore.CollectionRecipe, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	markers, err := store.Query(ctx, docstore.CollectionRecipeSupport, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, markers)

	err = svc.Delete(ctx, recipe.ID, "user_a", false)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
