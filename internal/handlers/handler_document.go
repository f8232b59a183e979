package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/openbooks/internal/apperrors"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// documentHandler handles HTTP requests for business documents. Creating a
// document posts its journal entry in the same request.
type documentHandler struct {
	postingService portssvc.PostingService
}

func newDocumentHandler(ps portssvc.PostingService) *documentHandler {
	return &documentHandler{postingService: ps}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, postingService portssvc.PostingService) {
	h := newDocumentHandler(postingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("/:docID", h.getDocument)
	}
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to post document",
		slog.String("doc_type", req.DocType), slog.String("date", req.Date))

	doc, entry, err := h.postingService.PostDocument(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnsupportedDocType):
			logger.Warn("Unsupported document type", slog.String("doc_type", req.DocType))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			logger.Warn("Posting rejected, period is closed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Posting rejected, duplicate reference", slog.String("ref", req.Ref))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnbalanced):
			logger.Error("Generated entry does not balance", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post document"})
		}
		return
	}

	logger.Info("Document posted",
		slog.String("doc_id", doc.DocID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.DocumentResponse{Document: *doc, Entry: entry})
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docID := c.Param("docID")

	doc, lines, err := h.postingService.GetDocument(c.Request.Context(), docID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document",
				slog.String("doc_id", docID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.DocumentResponse{Document: *doc, Lines: lines})
}
