package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// periodHandler handles HTTP requests for period closings.
type periodHandler struct {
	periodService portssvc.PeriodService
}

func newPeriodHandler(ps portssvc.PeriodService) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to period closings.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodService) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("/:period", h.getPeriod)
		periods.POST("/:period/close", h.closePeriod)
		periods.DELETE("/:period/close", h.reopenPeriod)
	}
}

func (h *periodHandler) parsePeriodParam(c *gin.Context) (domain.Period, bool) {
	period, err := domain.ParsePeriod(c.Param("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period must be in YYYY-MM format"})
		return "", false
	}
	return period, true
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.parsePeriodParam(c)
	if !ok {
		return
	}

	closing, err := h.periodService.Get(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.PeriodStatusResponse{Period: string(period), Closed: false})
			return
		}
		logger.Error("Failed to get period status",
			slog.String("period", string(period)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period status"})
		return
	}

	c.JSON(http.StatusOK, dto.PeriodStatusResponse{
		Period:   string(closing.Period),
		Closed:   true,
		ClosedAt: closing.ClosedAt.Format(time.RFC3339),
		ClosedBy: closing.ClosedBy,
		Notes:    closing.Notes,
	})
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.parsePeriodParam(c)
	if !ok {
		return
	}

	var req dto.ClosePeriodRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID := middleware.GetActorFromContext(c)
	closing, err := h.periodService.Close(c.Request.Context(), period, userID, req.Notes)
	if err != nil {
		logger.Error("Failed to close period",
			slog.String("period", string(period)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		return
	}

	logger.Info("Period closed",
		slog.String("period", string(period)), slog.String("closed_by", userID))
	c.JSON(http.StatusOK, dto.PeriodStatusResponse{
		Period:   string(closing.Period),
		Closed:   true,
		ClosedAt: closing.ClosedAt.Format(time.RFC3339),
		ClosedBy: closing.ClosedBy,
		Notes:    closing.Notes,
	})
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.parsePeriodParam(c)
	if !ok {
		return
	}

	if err := h.periodService.Reopen(c.Request.Context(), period); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period is not closed"})
			return
		}
		logger.Error("Failed to reopen period",
			slog.String("period", string(period)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen period"})
		return
	}

	logger.Info("Period reopened", slog.String("period", string(period)),
		slog.String("reopened_by", middleware.GetActorFromContext(c)))
	c.JSON(http.StatusOK, dto.PeriodStatusResponse{Period: string(period), Closed: false})
}
