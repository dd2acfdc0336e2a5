package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/domain/report"
	"github.com/personal-finance-tracker/internal/store"
)

// EntryHandler handles HTTP requests for entry operations
type EntryHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(logger *slog.Logger, s store.Store) *EntryHandler {
	return &EntryHandler{
		store:  s,
		logger: logger,
	}
}

// List returns the entries of the requested month or year, newest first
func (h *EntryHandler) List(c *gin.Context) {
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

	entries := report.SortedDescendingByDate(report.FilterByPeriod(l.Entries, filter))
	RespondOK(c, EntryListResponse{Entries: entries, Count: len(entries)})
}

// Create validates the body and appends a new entry
func (h *EntryHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Invalid request body", "error", err)
		RespondError(c, h.logger, bindError(err))
		return
	}

	in, err := req.ToInput()
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	entry, err := h.store.CreateEntry(c.Request.Context(), in)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondCreated(c, entry)
}

// Update replaces the supplied fields of an existing entry
func (h *EntryHandler) Update(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Invalid request body", "error", err)
		RespondError(c, h.logger, bindError(err))
		return
	}

	in, err := req.ToInput()
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	entry, err := h.store.UpdateEntry(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, entry)
}

// Delete removes an entry by id
func (h *EntryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteEntry(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, DeleteEntryResponse{ID: id, Deleted: true})
}

func filterFromQuery(c *gin.Context) (report.Filter, error) {
	return report.ParseFilter(c.Query("month"), c.Query("year"))
}
