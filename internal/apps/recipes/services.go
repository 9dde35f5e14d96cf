package recipes

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
)

var (
	ErrNameRequired   = errors.New("recipe name is required")
	ErrNoIngredients  = errors.New("recipe needs at least one named ingredient")
	ErrNoSteps        = errors.New("recipe needs at least one step")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotAuthor      = errors.New("only the author or an admin can delete a recipe")
)

const queryLimit = 1000

// Service manages the shared recipe library.
type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// List returns every recipe newest-first with support counts, flagging the
// ones the viewer already supported.
func (s *Service) List(ctx context.Context, viewerID string) ([]RecipeView, error) {
	recipeRecs, err := s.store.Query(ctx, docstore.CollectionRecipe, nil,
		&docstore.Options{Limit: queryLimit, Order: "-createdAt"})
	if err != nil {
		return nil, err
	}
	supportRecs, err := s.store.Query(ctx, docstore.CollectionRecipeSupport, nil,
		&docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	viewerHas := make(map[string]bool)
	for _, rec := range supportRecs {
		recipeID := docstore.String(rec.Fields, "recipeId")
		counts[recipeID]++
		if viewerID != "" && docstore.String(rec.Fields, "userId") == viewerID {
			viewerHas[recipeID] = true
		}
	}

	views := make([]RecipeView, 0, len(recipeRecs))
	for _, rec := range recipeRecs {
		recipe := RecipeFromRecord(rec)
		views = append(views, RecipeView{
			Recipe:          recipe,
			Supports:        counts[recipe.ID],
			ViewerSupported: viewerHas[recipe.ID],
		})
	}
	return views, nil
}

// Create validates and stores a new recipe. Blank ingredient rows and blank
// steps are dropped, not rejected; what must remain after dropping is a name,
// one named ingredient and one step.
func (s *Service) Create(ctx context.Context, authorID, name string, ingredients []Ingredient, steps []string) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	kept := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Qty = strings.TrimSpace(ing.Qty)
		if ing.Name == "" {
			continue
		}
		kept = append(kept, ing)
	}
	if len(kept) == 0 {
		return nil, ErrNoIngredients
	}

	keptSteps := make([]string, 0, len(steps))
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		keptSteps = append(keptSteps, step)
	}
	if len(keptSteps) == 0 {
		return nil, ErrNoSteps
	}

	recipe := Recipe{Name: name, AuthorID: authorID, Ingredients: kept, Steps: keptSteps}
	rec, err := s.store.Create(ctx, docstore.CollectionRecipe, recipe.Fields())
	if err != nil {
		return nil, err
	}
	created := RecipeFromRecord(*rec)
	return &created, nil
}

// Delete removes a recipe if the requester wrote it or is an admin. Support
// markers are cleaned up best-effort; a marker that survives is invisible
// once its recipe is gone.
func (s *Service) Delete(ctx context.Context, id, requesterID string, isAdmin bool) error {
	recs, err := s.store.Query(ctx, docstore.CollectionRecipe,
		docstore.Where{"objectId": id}, &docstore.Options{Limit: 1})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrRecipeNotFound
	}
	if !isAdmin && docstore.String(recs[0].Fields, "authorId") != requesterID {
		return ErrNotAuthor
	}

	if err := s.store.Delete(ctx, docstore.CollectionRecipe, id); err != nil {
		return err
	}

	markers, err := s.store.Query(ctx, docstore.CollectionRecipeSupport,
		docstore.Where{"recipeId": id}, &docstore.Options{Limit: queryLimit})
	if err != nil {
		slog.Error("support marker lookup failed", "recipe_id", id, "error", err)
		return nil
	}
	for _, marker := range markers {
		if err := s.store.Delete(ctx, docstore.CollectionRecipeSupport, marker.ID); err != nil {
			slog.Error("support marker delete failed", "recipe_id", id, "marker_id", marker.ID, "error", err)
		}
	}
	return nil
}

// Support records that a device backs a recipe. The intent is idempotent: an
// existing (recipeID, userID) marker makes this a no-op. The check is
// read-then-write with no store-side constraint; a racing duplicate counts
// twice and is tolerated.
func (s *Service) Support(ctx context.Context, recipeID, userID string) (bool, error) {
	recs, err := s.store.Query(ctx, docstore.CollectionRecipe,
		docstore.Where{"objectId": recipeID}, &docstore.Options{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(recs) == 0 {
		return false, ErrRecipeNotFound
	}

	markers, err := s.store.Query(ctx, docstore.CollectionRecipeSupport,
		docstore.Where{"recipeId": recipeID, "userId": userID}, &docstore.Options{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(markers) > 0 {
		return false, nil
	}

	_, err = s.store.Create(ctx, docstore.CollectionRecipeSupport, map[string]any{
		"recipeId": recipeID,
		"userId":   userID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
