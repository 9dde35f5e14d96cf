package recipes

import (
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
)

// Ingredient is one row of a recipe's ingredient list.
type Ingredient struct {
	Name string `json:"name"`
	Qty  string `json:"qty"`
}

// Recipe is a user-submitted recipe. AuthorID is the opaque device identity
// of the submitter.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AuthorID    string       `json:"authorId"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func RecipeFromRecord(rec docstore.Record) Recipe {
	raw := docstore.Maps(rec.Fields, "ingredients")
	ingredients := make([]Ingredient, 0, len(raw))
	for _, m := range raw {
		ingredients = append(ingredients, Ingredient{
			Name: docstore.String(m, "name"),
			Qty:  docstore.String(m, "qty"),
		})
	}
	return Recipe{
		ID:          rec.ID,
		Name:        docstore.String(rec.Fields, "name"),
		AuthorID:    docstore.String(rec.Fields, "authorId"),
		Ingredients: ingredients,
		Steps:       docstore.Strings(rec.Fields, "steps"),
		CreatedAt:   rec.CreatedAt,
	}
}

func (r Recipe) Fields() map[string]any {
	ingredients := make([]map[string]any, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, map[string]any{"name": ing.Name, "qty": ing.Qty})
	}
	return map[string]any{
		"name":        r.Name,
		"authorId":    r.AuthorID,
		"ingredients": ingredients,
		"steps":       r.Steps,
	}
}

// RecipeView is a recipe as listed: with its support count and whether the
// viewer already supported it.
type RecipeView struct {
	Recipe
	Supports        int  `json:"supports"`
	ViewerSupported bool `json:"viewerSupported"`
}
