package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/openbooks/internal/core/domain"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/middleware"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/statements", h.getStatements)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/anomalies", h.getAnomalies)
	}
}

// parseWindow reads the from/to query parameters. Both are required; the
// window is inclusive on both ends.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'from' must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'to' must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *reportingHandler) getStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.Statements(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statements"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build cash flow report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build cash flow report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getAnomalies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'period' must be YYYY-MM"})
		return
	}

	anomalies, err := h.reportingService.Anomalies(c.Request.Context(), period)
	if err != nil {
		logger.Error("Failed to score anomalies",
			slog.String("period", string(period)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score anomalies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": string(period), "accounts": anomalies})
}
