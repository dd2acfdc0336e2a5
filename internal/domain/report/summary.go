package report

import (
	"time"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// Summary is the dashboard view derived from one ledger snapshot
type Summary struct {
	Balance        ledger.Money    `json:"balance"`
	SpentToday     ledger.Money    `json:"spentToday"`
	SpentThisMonth ledger.Money    `json:"spentThisMonth"`
	SpentThisYear  ledger.Money    `json:"spentThisYear"`
	TotalIncome    ledger.Money    `json:"totalIncome"`
	Filter         Filter          `json:"filter"`
	Entries        []ledger.Entry  `json:"entries"`
	Categories     []CategoryTotal `json:"categories"`
	ChartYear      int             `json:"chartYear"`
	ChartMonth     time.Month      `json:"chartMonth"`
	DailyTotals    []ledger.Money  `json:"dailyTotals"`
}

// Summarize computes every dashboard figure for l.
// Period totals are relative to now. Without a filter the category breakdown
// covers the current month, and the daily chart follows a month filter only.
func Summarize(l *ledger.Ledger, f Filter, now time.Time) Summary {
	categoryFilter := f
	if f.IsNone() {
		categoryFilter = MonthFilter(now.Year(), now.Month())
	}

	chartYear, chartMonth, ok := f.Month()
	if !ok {
		chartYear, chartMonth = now.Year(), now.Month()
	}

	return Summary{
		Balance:        CurrentBalance(l),
		SpentToday:     TotalByKindAndPeriod(l, ledger.KindExpense, PeriodToday, now),
		SpentThisMonth: TotalByKindAndPeriod(l, ledger.KindExpense, PeriodThisMonth, now),
		SpentThisYear:  TotalByKindAndPeriod(l, ledger.KindExpense, PeriodThisYear, now),
		TotalIncome:    TotalByKindAndPeriod(l, ledger.KindIncome, PeriodAll, now),
		Filter:         f,
		Entries:        SortedDescendingByDate(FilterByPeriod(l.Entries, f)),
		Categories:     GroupByCategory(FilterByPeriod(l.Entries, categoryFilter)),
		ChartYear:      chartYear,
		ChartMonth:     chartMonth,
		DailyTotals:    DailyTotalsForMonth(l.Entries, chartYear, chartMonth),
	}
}
