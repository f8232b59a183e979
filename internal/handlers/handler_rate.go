package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/openbooks/internal/apperrors"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// rateHandler handles HTTP requests for exchange rates.
type rateHandler struct {
	fxService portssvc.FxService
}

func newRateHandler(fs portssvc.FxService) *rateHandler {
	return &rateHandler{fxService: fs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, fxService portssvc.FxService) {
	h := newRateHandler(fxService)

	rates := rg.Group("/rates")
	{
		rates.PUT("", h.upsertRate)
		rates.GET("", h.getRate)
	}
}

func (h *rateHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetActorFromContext(c)
	rate, err := h.fxService.SetRate(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set exchange rate",
			slog.String("currency", req.Currency), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set exchange rate"})
		return
	}

	logger.Info("Exchange rate set", slog.String("currency", rate.Currency),
		slog.String("date", rate.Date.Format("2006-01-02")),
		slog.String("rate", rate.RateToBase.String()))
	c.JSON(http.StatusOK, rate)
}

// getRate resolves the conversion rate for a (date, currency) pair. A pair
// with no stored rate resolves to 1, matching posting behaviour.
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'date' must be YYYY-MM-DD"})
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'currency' must be a 3-letter code"})
		return
	}

	rate, err := h.fxService.RateFor(c.Request.Context(), date, currency)
	if err != nil {
		logger.Error("Failed to resolve exchange rate",
			slog.String("currency", currency), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date.Format("2006-01-02"),
		"currency":   currency,
		"rateToBase": rate,
	})
}
