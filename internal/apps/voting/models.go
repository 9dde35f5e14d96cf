package voting

import (
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/models"
)

// Vote is one device's opinion on one dish. There is at most one row per
// (dishID, userID); re-votes update the row in place, which moves updatedAt
// past the round fence.
type Vote struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dishId"`
	UserID    string    `json:"userId"`
	Value     int       `json:"value"` // 1 like, -1 dislike
	UpdatedAt time.Time `json:"updatedAt"`
}

func VoteFromRecord(rec docstore.Record) Vote {
	return Vote{
		ID:        rec.ID,
		DishID:    docstore.String(rec.Fields, "dishId"),
		UserID:    docstore.String(rec.Fields, "userId"),
		Value:     docstore.Int(rec.Fields, "value"),
		UpdatedAt: rec.UpdatedAt,
	}
}

func (v Vote) Fields() map[string]any {
	return map[string]any{
		"dishId": v.DishID,
		"userId": v.UserID,
		"value":  v.Value,
	}
}

// Config selects up to ten dishes per category for a voting round. The
// createdAt of the newest config row is the round fence: only votes touched
// after it count toward the board.
type Config struct {
	ID        string          `json:"id"`
	Category  models.Category `json:"category"`
	DishIDs   []string        `json:"dishIds"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ConfigFromRecord(rec docstore.Record) Config {
	return Config{
		ID:        rec.ID,
		Category:  models.Category(docstore.String(rec.Fields, "category")),
		DishIDs:   docstore.Strings(rec.Fields, "dishIds"),
		CreatedAt: rec.CreatedAt,
	}
}

func (c Config) Fields() map[string]any {
	return map[string]any{
		"category": string(c.Category),
		"dishIds":  c.DishIDs,
	}
}

// BoardEntry is one dish's standing in the current round, scoped to a viewer.
type BoardEntry struct {
	DishID     string `json:"dishId"`
	Name       string `json:"name"`
	Likes      int    `json:"likes"`
	Dislikes   int    `json:"dislikes"`
	ViewerVote int    `json:"viewerVote"` // 1, -1 or 0
}

// BoardCategory is one category's ranking.
type BoardCategory struct {
	Category models.Category `json:"category"`
	Entries  []BoardEntry    `json:"entries"`
}

// Board is the attributed state of the current round.
type Board struct {
	RoundStart time.Time       `json:"roundStart"`
	Categories []BoardCategory `json:"categories"`
}
