package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/store"
)

// LedgerHandler handles HTTP requests on the ledger as a whole
type LedgerHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, s store.Store) *LedgerHandler {
	return &LedgerHandler{
		store:  s,
		logger: logger,
	}
}

// Get returns the full persisted ledger
func (h *LedgerHandler) Get(c *gin.Context) {
	l, err := h.store.Load(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, l)
}

// SetStartingBalance overwrites the opening balance
func (h *LedgerHandler) SetStartingBalance(c *gin.Context) {
	var req StartingBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Invalid request body", "error", err)
		RespondError(c, h.logger, bindError(err))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	if amount == nil {
		RespondError(c, h.logger, ledger.ErrInvalidInput{Field: ledger.FieldAmount, Reason: "is required"})
		return
	}

	balance, err := h.store.SetStartingBalance(c.Request.Context(), *amount)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, StartingBalanceResponse{StartingBalance: balance})
}
