// Package week maps calendar dates to ISO-8601 week identifiers and back.
// Week identifiers render as "2025-W34": the ISO year, then the week number
// without zero padding, matching the format stored alongside menu rows.
package week

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrBadWeekID = errors.New("week: malformed week id")

// IDOf returns the ISO week identifier of the given date. Week 1 of a year is
// the week containing that year's first Thursday.
func IDOf(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, wk)
}

// MondayOf returns the Monday (UTC midnight) of the identified week.
//
// Jan 4 is always inside ISO week 1, so the Monday of week 1 is found by
// walking back from it; later weeks are whole-week offsets from there. This
// is an exact inverse of IDOf: the original client shipped a Jan-1-based
// approximation that drifts on years starting late in the week.
func MondayOf(id string) (time.Time, error) {
	year, wk, err := parse(id)
	if err != nil {
		return time.Time{}, err
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4))
	monday := week1Monday.AddDate(0, 0, (wk-1)*7)

	// Week 53 only exists in long years; reject ids that round-trip to a
	// different week.
	if IDOf(monday) != fmt.Sprintf("%d-W%d", year, wk) {
		return time.Time{}, fmt.Errorf("%w: %q has no such week", ErrBadWeekID, id)
	}
	return monday, nil
}

// RangeLabel renders the Monday-through-Sunday span of a week as "MMDD-MMDD".
func RangeLabel(id string) (string, error) {
	monday, err := MondayOf(id)
	if err != nil {
		return "", err
	}
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%02d%02d-%02d%02d",
		int(monday.Month()), monday.Day(),
		int(sunday.Month()), sunday.Day()), nil
}

// CurrentID, LastID and NextID identify the weeks around a reference date.
func CurrentID(now time.Time) string { return IDOf(now) }
func LastID(now time.Time) string    { return IDOf(now.AddDate(0, 0, -7)) }
func NextID(now time.Time) string    { return IDOf(now.AddDate(0, 0, 7)) }

// isoWeekday maps Sunday to 7 instead of 0.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func parse(id string) (year, wk int, err error) {
	parts := strings.SplitN(id, "-W", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadWeekID, id)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadWeekID, id)
	}
	wk, err = strconv.Atoi(parts[1])
	if err != nil || wk < 1 || wk > 53 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadWeekID, id)
	}
	return year, wk, nil
}
