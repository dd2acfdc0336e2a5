package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

const (
	FieldMonth = "month"
	FieldYear  = "year"
)

type filterScope int

const (
	scopeNone filterScope = iota
	scopeMonth
	scopeYear
)

// Filter restricts a view to one month, one year, or nothing at all
type Filter struct {
	scope filterScope
	year  int
	month time.Month
}

// NoFilter matches every entry
func NoFilter() Filter {
	return Filter{scope: scopeNone}
}

// MonthFilter matches entries dated in the given year and month
func MonthFilter(year int, month time.Month) Filter {
	return Filter{scope: scopeMonth, year: year, month: month}
}

// YearFilter matches entries dated in the given year
func YearFilter(year int) Filter {
	return Filter{scope: scopeYear, year: year}
}

// ParseFilter builds a Filter from the textual month ("YYYY-MM") and year ("YYYY") parameters.
// When month is set the year is ignored, even if it is malformed.
func ParseFilter(month, year string) (Filter, error) {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return Filter{}, ledger.ErrInvalidInput{Field: FieldMonth, Reason: "must be in YYYY-MM format"}
		}
		return MonthFilter(t.Year(), t.Month()), nil
	}

	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || len(year) != 4 || y < 1 {
			return Filter{}, ledger.ErrInvalidInput{Field: FieldYear, Reason: "must be a four digit year"}
		}
		return YearFilter(y), nil
	}

	return NoFilter(), nil
}

// IsNone reports whether the filter matches everything
func (f Filter) IsNone() bool {
	return f.scope == scopeNone
}

// Month returns the filtered year and month, and false unless the filter is month-scoped
func (f Filter) Month() (int, time.Month, bool) {
	return f.year, f.month, f.scope == scopeMonth
}

// Year returns the filtered year, and false unless the filter is year-scoped
func (f Filter) Year() (int, bool) {
	return f.year, f.scope == scopeYear
}

// Matches reports whether d falls inside the filter
func (f Filter) Matches(d ledger.Date) bool {
	switch f.scope {
	case scopeMonth:
		return d.InMonth(f.year, f.month)
	case scopeYear:
		return d.Year() == f.year
	default:
		return true
	}
}

// String renders the filter as the parameter it was parsed from, or "" for none
func (f Filter) String() string {
	switch f.scope {
	case scopeMonth:
		return fmt.Sprintf("%04d-%02d", f.year, int(f.month))
	case scopeYear:
		return fmt.Sprintf("%04d", f.year)
	default:
		return ""
	}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	if f.scope == scopeNone {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(f.String())), nil
}

// FilterByPeriod returns the entries matching f, keeping their order.
// The result is never nil so an empty view is distinguishable from a failure.
func FilterByPeriod(entries []ledger.Entry, f Filter) []ledger.Entry {
	filtered := make([]ledger.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
