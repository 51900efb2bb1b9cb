package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wordwise.app/server/internal/http/dto"
	"wordwise.app/server/internal/model"
	"wordwise.app/server/internal/service"
	"wordwise.app/server/internal/store"
	"wordwise.app/server/internal/suggestion"
)

type SuggestionHandler struct {
	service service.SuggestionService
}

func NewSuggestionHandler(service service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// Check runs the grammar pipeline, optionally augmented with AI suggestions.
// A grammar upstream failure is a 502; an AI failure still yields 200 with
// the fallback flagged in service_status.
func (h *SuggestionHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CheckSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.service.Check(ctx, service.CheckParams{
		Text:           req.Text,
		Language:       req.Language,
		DocumentID:     req.DocumentID,
		UserID:         req.UserID,
		Preferences:    req.Preferences,
		WritingContext: req.WritingContext,
		UserGoals:      req.UserGoals,
		IncludeAI:      req.IncludeAI,
	})
	if err != nil {
		slog.ErrorContext(ctx, "suggestion check failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "grammar check unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.CheckSuggestionsResponse{
		Success:          true,
		Suggestions:      result.Suggestions,
		Stats:            result.Suggestions.Stats,
		DetectedLanguage: result.DetectedLanguage,
		AIStats:          result.AIStats,
		ServiceStatus:    result.ServiceStatus,
		ProcessingTimeMs: result.ProcessingTimeMs,
	})
}

// GenerateAI always answers 200 once the request validates: AI-side failures
// surface as success=false with an empty, well-formed suggestion batch.
func (h *SuggestionHandler) GenerateAI(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AISuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result := h.service.GenerateAI(ctx, service.AIParams{
		Text:           req.Text,
		DocumentID:     req.DocumentID,
		UserID:         req.UserID,
		Preferences:    req.Preferences,
		WritingContext: req.WritingContext,
		UserGoals:      req.UserGoals,
		Segment:        req.Segment,
	})

	c.JSON(http.StatusOK, dto.AISuggestionsResponse{
		Success:       result.Success,
		Error:         result.Error,
		Suggestions:   result.Suggestions,
		Stats:         result.Suggestions.Stats,
		AIStats:       result.AIStats,
		ServiceStatus: result.ServiceStatus,
	})
}

func (h *SuggestionHandler) ListByDocument(c *gin.Context) {
	ctx := c.Request.Context()

	params := service.ListParams{
		DocumentID: c.Param("documentId"),
		Filters:    filtersFromQuery(c),
		SortBy:     suggestion.SortField(c.Query("sort_by")),
		SortOrder:  suggestion.SortOrder(c.Query("sort_order")),
	}

	suggestions, err := h.service.List(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "listing suggestions failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list suggestions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSuggestionsResponse{
		Suggestions: suggestions,
		Total:       len(suggestions),
	})
}

func (h *SuggestionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id"})
		return
	}

	var req dto.UpdateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(ctx, id, service.UpdateSuggestionParams{
		Status:      req.Status,
		IsProcessed: req.IsProcessed,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "suggestion not found"})
			return
		}
		slog.ErrorContext(ctx, "updating suggestion failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update suggestion"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *SuggestionHandler) DeleteByDocument(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.service.DeleteByDocument(ctx, c.Param("documentId"))
	if err != nil {
		slog.ErrorContext(ctx, "deleting document suggestions failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func filtersFromQuery(c *gin.Context) suggestion.Filters {
	filters := suggestion.Filters{Search: c.Query("search")}

	if v := c.Query("type"); v != "" {
		t := model.SuggestionType(v)
		filters.Type = &t
	}
	if v := c.Query("status"); v != "" {
		s := model.SuggestionStatus(v)
		filters.Status = &s
	}
	if v := c.Query("severity"); v != "" {
		s := model.Severity(v)
		filters.Severity = &s
	}
	if v := c.Query("is_processed"); v != "" {
		processed := v == "true"
		filters.IsProcessed = &processed
	}
	return filters
}
