package docstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Update and Delete when no record matches the id.
var ErrNotFound = errors.New("docstore: record not found")

// Where is a field-equality filter applied by the backing store. The special
// key "objectId" addresses the record id itself, matching the wire convention
// of the hosted store.
type Where map[string]any

// Options tunes a Query beyond the where filter.
type Options struct {
	// Limit caps the number of returned records. Zero means backend default.
	Limit int

	// Order is a field name, prefixed with '-' for descending. Only
	// "createdAt" and "-createdAt" are guaranteed across backends.
	Order string
}

// Record is a stored document.
type Record struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

// Store is the collection CRUD contract shared by all persistence backends.
// Querying a collection that has never been written to returns an empty list,
// never an error.
type Store interface {
	Query(ctx context.Context, collection string, where Where, opts *Options) ([]Record, error)
	Create(ctx context.Context, collection string, fields map[string]any) (*Record, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) (*Record, error)
	Delete(ctx context.Context, collection, id string) error
}

// Collection names, wire-compatible with the production store.
const (
	CollectionDish          = "Dish"
	CollectionWeeklyMenu    = "WeeklyMenu"
	CollectionVotingConfig  = "VotingConfig"
	CollectionVote          = "Vote"
	CollectionRecipe        = "Recipe"
	CollectionRecipeSupport = "RecipeSupport"
	CollectionVoteLog       = "VoteLog"
)
