package main

import (
	"fmt"
	"io"

	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/domain/report"
)

func printSummary(w io.Writer, s report.Summary) {
	scope := s.Filter.String()
	if scope == "" {
		scope = "all"
	}

	fmt.Fprintf(w, "%-20s %12s\n", "Balance", s.Balance)
	fmt.Fprintf(w, "%-20s %12s\n", "Spent today", s.SpentToday)
	fmt.Fprintf(w, "%-20s %12s\n", "Spent this month", s.SpentThisMonth)
	fmt.Fprintf(w, "%-20s %12s\n", "Spent this year", s.SpentThisYear)
	fmt.Fprintf(w, "%-20s %12s\n", "Total income", s.TotalIncome)

	fmt.Fprintf(w, "\nEntries (%s): %d\n", scope, len(s.Entries))
	for _, e := range s.Entries {
		sign := "-"
		if e.Kind == ledger.KindIncome {
			sign = "+"
		}
		fmt.Fprintf(w, "  %s  %-20s %s%s  %s\n", e.Date, e.Category, sign, e.Amount, e.Description)
	}

	fmt.Fprintln(w, "\nExpenses by category")
	if len(s.Categories) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, c := range s.Categories {
		fmt.Fprintf(w, "  %-20s %12s\n", c.Category, c.Total)
	}
}
