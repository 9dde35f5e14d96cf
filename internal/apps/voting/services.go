package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/apps/library"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/optimistic"
)

var (
	ErrBadValue        = errors.New("vote value must be 1 or -1")
	ErrDishNotInRound  = errors.New("dish is not part of the current voting round")
	ErrTooManyDishes   = errors.New("a category holds at most 10 dishes")
	ErrUnknownCategory = errors.New("unknown voting category")
)

const (
	queryLimit        = 1000
	maxDishesPerRound = 10
)

// Service runs the popularity voting rounds.
type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// CastResult is the settled outcome of one vote action: the reconciled board
// plus the phase the optimistic action ended in.
type CastResult struct {
	Phase  string `json:"phase"`
	Board  Board  `json:"board"`
	MyVote int    `json:"myVote"`
}

func (s *Service) snapshot(ctx context.Context) ([]Config, []library.Dish, []Vote, error) {
	cfgRecs, err := s.store.Query(ctx, docstore.CollectionVotingConfig, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load voting configs: %w", err)
	}
	dishRecs, err := s.store.Query(ctx, docstore.CollectionDish, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load dishes: %w", err)
	}
	voteRecs, err := s.store.Query(ctx, docstore.CollectionVote, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load votes: %w", err)
	}

	configs := make([]Config, 0, len(cfgRecs))
	for _, rec := range cfgRecs {
		configs = append(configs, ConfigFromRecord(rec))
	}
	dishes := make([]library.Dish, 0, len(dishRecs))
	for _, rec := range dishRecs {
		dishes = append(dishes, library.DishFromRecord(rec))
	}
	votes := make([]Vote, 0, len(voteRecs))
	for _, rec := range voteRecs {
		votes = append(votes, VoteFromRecord(rec))
	}
	return configs, dishes, votes, nil
}

// Board returns the attributed ranking for the current round as seen by the
// given viewer.
func (s *Service) Board(ctx context.Context, viewerID string) (Board, error) {
	configs, dishes, votes, err := s.snapshot(ctx)
	if err != nil {
		return Board{}, err
	}
	return Attribute(configs, dishes, votes, viewerID), nil
}

// MyVotes returns the viewer's in-round votes as a dishID to value map, the
// server-side analog of the map the client keeps locally.
func (s *Service) MyVotes(ctx context.Context, viewerID string) (map[string]int, error) {
	cfgRecs, err := s.store.Query(ctx, docstore.CollectionVotingConfig, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, fmt.Errorf("load voting configs: %w", err)
	}
	var roundStart time.Time
	for _, rec := range cfgRecs {
		if rec.CreatedAt.After(roundStart) {
			roundStart = rec.CreatedAt
		}
	}

	recs, err := s.store.Query(ctx, docstore.CollectionVote,
		docstore.Where{"userId": viewerID}, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}

	mine := make(map[string]int)
	for _, rec := range recs {
		v := VoteFromRecord(rec)
		if v.UpdatedAt.After(roundStart) && (v.Value == 1 || v.Value == -1) {
			mine[v.DishID] = v.Value
		}
	}
	return mine, nil
}

// Cast applies one viewer action as an optimistic two-phase operation: fold
// the guess into the current board, attempt the store write, then re-fetch
// the authoritative state and settle. A failed write is never an HTTP error;
// the action settles Reverted and the response carries the real board.
func (s *Service) Cast(ctx context.Context, viewerID, dishID string, value int) (*CastResult, error) {
	if value != 1 && value != -1 {
		return nil, ErrBadValue
	}

	configs, dishes, votes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	board := Attribute(configs, dishes, votes, viewerID)
	if !inRound(board, dishID) {
		return nil, ErrDishNotInRound
	}

	action := optimistic.Begin(ApplyVote(board, dishID, value))

	writeErr := s.writeVote(ctx, votes, board.RoundStart, viewerID, dishID, value)

	configs, dishes, votes, err = s.snapshot(ctx)
	if err != nil {
		// The write may have landed; without a snapshot the best honest
		// answer is the guess marked as unsettled failure.
		if settleErr := action.Revert(action.Guess()); settleErr != nil {
			return nil, settleErr
		}
	} else {
		server := Attribute(configs, dishes, votes, viewerID)
		var settleErr error
		if writeErr != nil {
			slog.Error("vote write failed", "device_id", viewerID, "dish_id", dishID, "error", writeErr)
			settleErr = action.Revert(server)
		} else {
			settleErr = action.Confirm(server)
		}
		if settleErr != nil {
			return nil, settleErr
		}
	}

	result := action.Result()
	return &CastResult{
		Phase:  action.Phase().String(),
		Board:  result,
		MyVote: viewerVoteOn(result, dishID),
	}, nil
}

// writeVote performs the single store mutation for a vote action. The toggle
// policy keys off the viewer's existing row: a fenced row with the same value
// is retracted, any other existing row is overwritten in place, otherwise a
// new row is created. Overwriting a stale row pulls it into the round via
// updatedAt.
func (s *Service) writeVote(ctx context.Context, votes []Vote, roundStart time.Time, viewerID, dishID string, value int) error {
	var existing *Vote
	for i := range votes {
		if votes[i].DishID == dishID && votes[i].UserID == viewerID {
			existing = &votes[i]
			break
		}
	}

	switch {
	case existing == nil:
		vote := Vote{DishID: dishID, UserID: viewerID, Value: value}
		_, err := s.store.Create(ctx, docstore.CollectionVote, vote.Fields())
		return err
	case existing.UpdatedAt.After(roundStart) && existing.Value == value:
		return s.store.Delete(ctx, docstore.CollectionVote, existing.ID)
	default:
		_, err := s.store.Update(ctx, docstore.CollectionVote, existing.ID, map[string]any{"value": value})
		return err
	}
}

func inRound(board Board, dishID string) bool {
	for _, cat := range board.Categories {
		for _, e := range cat.Entries {
			if e.DishID == dishID {
				return true
			}
		}
	}
	return false
}

func viewerVoteOn(board Board, dishID string) int {
	for _, cat := range board.Categories {
		for _, e := range cat.Entries {
			if e.DishID == dishID {
				return e.ViewerVote
			}
		}
	}
	return 0
}

// SaveConfigs replaces the whole voting round: every existing config row is
// deleted, then one row per non-empty category is created. The createdAt of
// the new rows fences out every earlier vote, which starts the next round
// without touching the Vote collection. Validation runs before any write.
func (s *Service) SaveConfigs(ctx context.Context, configs []Config) ([]Config, error) {
	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		if !cfg.Category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cfg.Category)
		}
		if seen[string(cfg.Category)] {
			return nil, fmt.Errorf("category %q listed twice", cfg.Category)
		}
		seen[string(cfg.Category)] = true
		if len(cfg.DishIDs) > maxDishesPerRound {
			return nil, fmt.Errorf("%w: %q has %d", ErrTooManyDishes, cfg.Category, len(cfg.DishIDs))
		}
	}

	existing, err := s.store.Query(ctx, docstore.CollectionVotingConfig, nil, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if err := s.store.Delete(ctx, docstore.CollectionVotingConfig, rec.ID); err != nil {
			slog.Error("stale voting config delete failed", "config_id", rec.ID, "error", err)
		}
	}

	saved := make([]Config, 0, len(configs))
	for _, cfg := range configs {
		if len(cfg.DishIDs) == 0 {
			continue
		}
		rec, err := s.store.Create(ctx, docstore.CollectionVotingConfig, cfg.Fields())
		if err != nil {
			return nil, err
		}
		saved = append(saved, ConfigFromRecord(*rec))
	}
	return saved, nil
}

// ClearHistory physically deletes every vote, including rows from the legacy
// VoteLog collection still present in old deployments. Individual delete
// failures are logged and skipped; the operation reports how many rows went.
func (s *Service) ClearHistory(ctx context.Context) (int, error) {
	deleted := 0
	for _, collection := range []string{docstore.CollectionVote, docstore.CollectionVoteLog} {
		recs, err := s.store.Query(ctx, collection, nil, &docstore.Options{Limit: queryLimit})
		if err != nil {
			return deleted, err
		}
		for _, rec := range recs {
			if err := s.store.Delete(ctx, collection, rec.ID); err != nil {
				slog.Error("vote history delete failed", "collection", collection, "row_id", rec.ID, "error", err)
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}
