package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// Period is a window relative to a reference instant
type Period string

const (
	PeriodToday     Period = "today"
	PeriodThisMonth Period = "this_month"
	PeriodThisYear  Period = "this_year"
	PeriodAll       Period = "all"
)

// Contains reports whether d falls in the period anchored at now.
// now is interpreted in its own location.
func (p Period) Contains(d ledger.Date, now time.Time) bool {
	switch p {
	case PeriodToday:
		return d.Equal(ledger.DateOf(now))
	case PeriodThisMonth:
		return d.InMonth(now.Year(), now.Month())
	case PeriodThisYear:
		return d.Year() == now.Year()
	case PeriodAll:
		return true
	default:
		return false
	}
}

// CategoryTotal is the summed expense amount of one category
type CategoryTotal struct {
	Category string       `json:"category"`
	Total    ledger.Money `json:"total"`
}

// CurrentBalance is the starting balance minus every expense plus every income
func CurrentBalance(l *ledger.Ledger) ledger.Money {
	balance := l.StartingBalance.Decimal
	for _, e := range l.Entries {
		switch e.Kind {
		case ledger.KindExpense:
			balance = balance.Sub(e.Amount.Decimal)
		case ledger.KindIncome:
			balance = balance.Add(e.Amount.Decimal)
		}
	}
	return ledger.NewMoney(balance)
}

// TotalByKindAndPeriod sums the amounts of kind entries falling in period relative to now
func TotalByKindAndPeriod(l *ledger.Ledger, kind ledger.Kind, period Period, now time.Time) ledger.Money {
	total := decimal.Zero
	for _, e := range l.Entries {
		if e.Kind == kind && period.Contains(e.Date, now) {
			total = total.Add(e.Amount.Decimal)
		}
	}
	return ledger.NewMoney(total)
}

// SortedDescendingByDate returns a copy of entries, newest first.
// Entries sharing a date keep their relative order.
func SortedDescendingByDate(entries []ledger.Entry) []ledger.Entry {
	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	return sorted
}

// GroupByCategory sums expense amounts per category in order of first appearance
func GroupByCategory(entries []ledger.Entry) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)

	for _, e := range entries {
		if e.Kind != ledger.KindExpense {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Total: ledger.ZeroMoney()})
		}
		totals[i].Total = ledger.NewMoney(totals[i].Total.Add(e.Amount.Decimal))
	}

	return totals
}

// DaysInMonth returns the number of days of month in year, leap years included
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DailyTotalsForMonth returns one slot per day of the month; slot i holds the expenses dated on day i+1
func DailyTotalsForMonth(entries []ledger.Entry, year int, month time.Month) []ledger.Money {
	days := make([]decimal.Decimal, DaysInMonth(year, month))
	for _, e := range entries {
		if e.Kind != ledger.KindExpense || !e.Date.InMonth(year, month) {
			continue
		}
		day := e.Date.Day() - 1
		days[day] = days[day].Add(e.Amount.Decimal)
	}

	totals := make([]ledger.Money, len(days))
	for i, d := range days {
		totals[i] = ledger.NewMoney(d)
	}
	return totals
}
