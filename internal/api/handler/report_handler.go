package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/domain/report"
	"github.com/personal-finance-tracker/internal/store"
)

// Clock returns the current instant in the location used for "today"
type Clock func() time.Time

// ReportHandler serves the derived dashboard figures
type ReportHandler struct {
	store  store.Store
	logger *slog.Logger
	now    Clock
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, s store.Store, now Clock) *ReportHandler {
	return &ReportHandler{
		store:  s,
		logger: logger,
		now:    now,
	}
}

// Summary computes the balance, period totals, category breakdown and daily chart
func (h *ReportHandler) Summary(c *gin.Context) {
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

	RespondOK(c, report.Summarize(l, filter, h.now()))
}
