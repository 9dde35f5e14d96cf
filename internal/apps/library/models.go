package library

import (
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/models"
)

// Dish is a named dish in the canteen library. The wire field names match the
// documents already in the production store.
type Dish struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  models.Category `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DishFromRecord maps a stored document onto a Dish.
func DishFromRecord(rec docstore.Record) Dish {
	return Dish{
		ID:        rec.ID,
		Name:      docstore.String(rec.Fields, "name"),
		Category:  models.Category(docstore.String(rec.Fields, "category")),
		CreatedAt: rec.CreatedAt,
	}
}

// Fields returns the document representation of the dish.
func (d Dish) Fields() map[string]any {
	return map[string]any{
		"name":     d.Name,
		"category": string(d.Category),
	}
}

// DishStats is a dish with its all-time vote totals, across every voting
// round ever run.
type DishStats struct {
	Dish
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// CategoryGroup is one category's slice of the library, in display order.
type CategoryGroup struct {
	Category models.Category `json:"category"`
	Dishes   []DishStats     `json:"dishes"`
}
