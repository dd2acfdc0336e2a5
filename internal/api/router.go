package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/api/handler"
	"github.com/personal-finance-tracker/internal/api/middleware"
)

// handlers groups every HTTP handler the router exposes
type handlers struct {
	ledger *handler.LedgerHandler
	entry  *handler.EntryHandler
	report *handler.ReportHandler
	export *handler.ExportHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		ledger := v1.Group("/ledger")
		{
			ledger.GET("", h.ledger.Get)
			ledger.PUT("/starting-balance", h.ledger.SetStartingBalance)
		}

		entries := v1.Group("/entries")
		{
			entries.GET("", h.entry.List)
			entries.POST("", h.entry.Create)
			entries.PUT("/:id", h.entry.Update)
			entries.DELETE("/:id", h.entry.Delete)
		}

		v1.GET("/summary", h.report.Summary)
		v1.GET("/export/:format", h.export.Export)
	}

	r.NoRoute(func(c *gin.Context) {
		handler.RespondNotFound(c, "")
	})

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
