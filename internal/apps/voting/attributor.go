package voting

import (
	"sort"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/apps/library"
)

// Attribute derives the viewer-scoped board for the current round. It is a
// pure function over store snapshots so it can be recomputed for an
// optimistic guess without touching the store.
//
// The round starts at the createdAt of the newest config row; with no
// configs the round start is the zero time and every vote counts. Votes
// whose updatedAt is not strictly after the round start belong to an earlier
// round and are ignored. Config dish ids that no longer resolve to a dish
// are dropped silently.
func Attribute(configs []Config, dishes []library.Dish, votes []Vote, viewerID string) Board {
	var roundStart time.Time
	for _, cfg := range configs {
		if cfg.CreatedAt.After(roundStart) {
			roundStart = cfg.CreatedAt
		}
	}

	dishByID := make(map[string]library.Dish, len(dishes))
	for _, d := range dishes {
		dishByID[d.ID] = d
	}

	likes := make(map[string]int)
	dislikes := make(map[string]int)
	viewer := make(map[string]int)
	for _, v := range votes {
		if !v.UpdatedAt.After(roundStart) {
			continue
		}
		switch v.Value {
		case 1:
			likes[v.DishID]++
		case -1:
			dislikes[v.DishID]++
		default:
			continue
		}
		if v.UserID == viewerID && viewerID != "" {
			viewer[v.DishID] = v.Value
		}
	}

	categories := make([]BoardCategory, 0, len(configs))
	for _, cfg := range configs {
		entries := make([]BoardEntry, 0, len(cfg.DishIDs))
		for _, dishID := range cfg.DishIDs {
			dish, ok := dishByID[dishID]
			if !ok {
				continue
			}
			entries = append(entries, BoardEntry{
				DishID:     dishID,
				Name:       dish.Name,
				Likes:      likes[dishID],
				Dislikes:   dislikes[dishID],
				ViewerVote: viewer[dishID],
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Likes > entries[j].Likes
		})
		categories = append(categories, BoardCategory{Category: cfg.Category, Entries: entries})
	}

	return Board{RoundStart: roundStart, Categories: categories}
}

// ApplyVote returns a copy of the board with one viewer action folded in,
// following the toggle policy: a repeat click retracts the vote, the opposite
// polarity overwrites it, a first click creates it. Used as the optimistic
// guess before the store write settles.
func ApplyVote(board Board, dishID string, value int) Board {
	out := Board{RoundStart: board.RoundStart, Categories: make([]BoardCategory, len(board.Categories))}
	for ci, cat := range board.Categories {
		entries := make([]BoardEntry, len(cat.Entries))
		copy(entries, cat.Entries)
		for ei := range entries {
			if entries[ei].DishID != dishID {
				continue
			}
			e := &entries[ei]
			switch {
			case e.ViewerVote == value:
				bump(e, value, -1)
				e.ViewerVote = 0
			case e.ViewerVote == 0:
				bump(e, value, 1)
				e.ViewerVote = value
			default:
				bump(e, e.ViewerVote, -1)
				bump(e, value, 1)
				e.ViewerVote = value
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Likes > entries[j].Likes
		})
		out.Categories[ci] = BoardCategory{Category: cat.Category, Entries: entries}
	}
	return out
}

func bump(e *BoardEntry, value, delta int) {
	switch value {
	case 1:
		e.Likes += delta
	case -1:
		e.Dislikes += delta
	}
}
