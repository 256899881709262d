package model

import (
	"fmt"
	"strconv"
	"time"
)

// Period identifies one calendar month of invoices.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod builds a Period from the raw request strings. Both values
// must parse as integers; the month is not range-checked here, so a
// value like "13" passes and simply matches no invoices downstream.
// The form bounds the month client-side.
func ParsePeriod(year, month string) (Period, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, fmt.Errorf("year must be numeric, got %q", year)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return Period{}, fmt.Errorf("month must be numeric, got %q", month)
	}
	return Period{Year: y, Month: m}, nil
}

// Range returns the closed Unix-second range [gte, lte] covering the
// first through last instant of the month in the server's local time zone.
func (p Period) Range() (gte, lte int64) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start.Unix(), end.Unix()
}

// MonthName returns the English month name used in output file names.
// A month outside 1-12 (accepted by parsing, see ParsePeriod) yields
// Go's fallback formatting, e.g. "%!Month(13)".
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}
