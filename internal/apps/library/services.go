package library

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/models"
)

var (
	ErrEmptyName     = errors.New("dish name is required")
	ErrBadCategory   = errors.New("unknown dish category")
	ErrDuplicateDish = errors.New("a dish with this name already exists")
)

const queryLimit = 1000

// Service manages the dish library.
type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// List returns every dish grouped by category, each with its all-time like
// and dislike totals. Totals are unfenced on purpose: the library view shows
// lifetime popularity, not the current round.
func (s *Service) List(ctx context.Context) ([]CategoryGroup, error) {
	dishRecs, err := s.store.Query(ctx, docstore.CollectionDish, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}
	voteRecs, err := s.store.Query(ctx, docstore.CollectionVote, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}

	likes := make(map[string]int)
	dislikes := make(map[string]int)
	for _, rec := range voteRecs {
		dishID := docstore.String(rec.Fields, "dishId")
		switch docstore.Int(rec.Fields, "value") {
		case 1:
			likes[dishID]++
		case -1:
			dislikes[dishID]++
		}
	}

	byCategory := make(map[models.Category][]DishStats)
	for _, rec := range dishRecs {
		dish := DishFromRecord(rec)
		if !dish.Category.Valid() {
			continue
		}
		byCategory[dish.Category] = append(byCategory[dish.Category], DishStats{
			Dish:     dish,
			Likes:    likes[dish.ID],
			Dislikes: dislikes[dish.ID],
		})
	}

	groups := make([]CategoryGroup, 0, len(models.Categories()))
	for _, cat := range models.Categories() {
		dishes := byCategory[cat]
		sort.SliceStable(dishes, func(i, j int) bool {
			return dishes[i].Likes > dishes[j].Likes
		})
		if dishes == nil {
			dishes = []DishStats{}
		}
		groups = append(groups, CategoryGroup{Category: cat, Dishes: dishes})
	}
	return groups, nil
}

// AddDish creates a dish after checking the name is non-empty and not already
// taken anywhere in the library, case-insensitively. The check is
// read-then-write; a concurrent duplicate slips through and is tolerated.
func (s *Service) AddDish(ctx context.Context, name string, category models.Category) (*Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !category.Valid() {
		return nil, ErrBadCategory
	}

	existing, err := s.store.Query(ctx, docstore.CollectionDish, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if strings.EqualFold(strings.TrimSpace(docstore.String(rec.Fields, "name")), name) {
			return nil, ErrDuplicateDish
		}
	}

	dish := Dish{Name: name, Category: category}
	rec, err := s.store.Create(ctx, docstore.CollectionDish, dish.Fields())
	if err != nil {
		return nil, err
	}
	created := DishFromRecord(*rec)
	return &created, nil
}

// DeleteDish removes a dish from the library. Votes referencing it stay in
// place and are dropped by the board attribution as dangling.
func (s *Service) DeleteDish(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, docstore.CollectionDish, id)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		slog.Error("dish delete failed", "dish_id", id, "error", err)
		return nil
	}
	return err
}
