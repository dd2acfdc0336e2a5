package export

import (
	"fmt"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// Format names an export file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Valid reports whether f is a supported export format
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// ContentType returns the MIME type served for f
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns the download name for an export produced on the given day
func Filename(f Format, on ledger.Date) string {
	return fmt.Sprintf("entries_%s.%s", on.String(), f)
}
