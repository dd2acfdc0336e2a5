package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

var csvHeader = []string{"date", "kind", "category", "description", "amount"}

// WriteCSV writes entries in the given order as comma separated rows.
// Category and description are always quoted so free text with commas or quotes survives.
func WriteCSV(w io.Writer, entries []ledger.Entry) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(csvHeader, ",") + "\n"); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date.String(),
			string(e.Kind),
			quote(e.Category),
			quote(e.Description),
			e.Amount.String(),
		}
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
