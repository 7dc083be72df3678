// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/payment-clauses/pkg/constants"
)

const (
	// DateLayout is the ISO date format used for due dates.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseISODate parses "2006-01-02". Full RFC 3339 timestamps are accepted and
// truncated to their date, since editors often serialise dates that way.
func ParseISODate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > len(DateLayout) && trimmed[len(DateLayout)] == 'T' {
		trimmed = trimmed[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// AddMonthsClamped returns the same day of the month `months` later. When the
// target month is shorter the date is clamped to its last day, so a series
// starting on January 31st falls due on February 28th (or 29th).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := DaysIn(first.Year(), first.Month())
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := ParseISODate(firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := ParseISODate(secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
