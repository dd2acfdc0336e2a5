package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/domain/report"
	"github.com/personal-finance-tracker/internal/export"
	"github.com/personal-finance-tracker/internal/store"
)

// ExportHandler streams the filtered entries as a downloadable file
type ExportHandler struct {
	store  store.Store
	logger *slog.Logger
	now    Clock
}

// NewExportHandler creates a new export handler
func NewExportHandler(logger *slog.Logger, s store.Store, now Clock) *ExportHandler {
	return &ExportHandler{
		store:  s,
		logger: logger,
		now:    now,
	}
}

// Export writes the entries of the requested period in insertion order.
// An empty selection still produces a file with only the header.
func (h *ExportHandler) Export(c *gin.Context) {
	format := export.Format(c.Param("format"))
	if !format.Valid() {
		RespondError(c, h.logger, ledger.ErrInvalidInput{Field: "format", Reason: `must be "csv" or "xlsx"`})
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	l, err := h.store.Load(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	entries := report.FilterByPeriod(l.Entries, filter)

	var body []byte
	switch format {
	case export.FormatXLSX:
		body, err = export.XLSX(entries)
	default:
		var buf bytes.Buffer
		err = export.WriteCSV(&buf, entries)
		body = buf.Bytes()
	}
	if err != nil {
		RespondError(c, h.logger, fmt.Errorf("failed to render %s export: %w", format, err))
		return
	}

	filename := export.Filename(format, ledger.DateOf(h.now()))
	h.logger.Debug("Export generated", "format", format, "entries", len(entries), "filter", filter.String())

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), body)
}
