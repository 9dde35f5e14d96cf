package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/week"
)

var (
	ErrBadDayIndex  = errors.New("day index must be between 0 and 6")
	ErrDuplicateDay = errors.New("duplicate day in submitted week")
)

const queryLimit = 1000

// Service reads and replaces weekly menus.
type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// Week returns the stored menu for weekID, days sorted by index. A week with
// no stored days is a valid empty week, not an error.
func (s *Service) Week(ctx context.Context, weekID string) (*WeekMenu, error) {
	label, err := week.RangeLabel(weekID)
	if err != nil {
		return nil, err
	}

	recs, err := s.store.Query(ctx, docstore.CollectionWeeklyMenu,
		docstore.Where{"weekId": weekID}, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}

	days := make([]DayMenu, 0, len(recs))
	for _, rec := range recs {
		days = append(days, DayFromRecord(rec))
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayIndex < days[j].DayIndex })

	return &WeekMenu{WeekID: weekID, Range: label, Days: days}, nil
}

// SaveWeek replaces the whole week: every stored row for weekID is deleted,
// then the submitted days are inserted. Validation runs before any write.
// Delete failures are logged and skipped so a half-cleaned week still gets
// the new rows.
func (s *Service) SaveWeek(ctx context.Context, weekID string, days []DayMenu) (*WeekMenu, error) {
	if _, err := week.MondayOf(weekID); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.DayIndex < 0 || d.DayIndex > 6 {
			return nil, ErrBadDayIndex
		}
		if seen[d.DayIndex] {
			return nil, fmt.Errorf("%w: day %d", ErrDuplicateDay, d.DayIndex)
		}
		seen[d.DayIndex] = true
	}

	existing, err := s.store.Query(ctx, docstore.CollectionWeeklyMenu,
		docstore.Where{"weekId": weekID}, &docstore.Options{Limit: queryLimit})
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if err := s.store.Delete(ctx, docstore.CollectionWeeklyMenu, rec.ID); err != nil {
			slog.Error("stale menu row delete failed", "week_id", weekID, "row_id", rec.ID, "error", err)
		}
	}

	for _, d := range days {
		d.WeekID = weekID
		if _, err := s.store.Create(ctx, docstore.CollectionWeeklyMenu, d.Fields()); err != nil {
			return nil, err
		}
	}

	return s.Week(ctx, weekID)
}
