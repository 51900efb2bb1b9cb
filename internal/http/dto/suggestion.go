package dto

import (
	"fmt"

	"wordwise.app/server/internal/ai"
	"wordwise.app/server/internal/model"
)

const (
	// MaxAutoCheckChars bounds editor-triggered checks.
	MaxAutoCheckChars = 20000
	// MaxManualCheckChars bounds explicit user-initiated checks.
	MaxManualCheckChars = 50000
)

type CheckSuggestionsRequest struct {
	Text       string `json:"text" binding:"required"`
	Language   string `json:"language" binding:"required"`
	DocumentID string `json:"document_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`

	Preferences    *model.CheckPreferences `json:"preferences,omitempty"`
	WritingContext *model.WritingContext   `json:"writing_context,omitempty"`
	UserGoals      []string                `json:"user_goals,omitempty"`
	IncludeAI      bool                    `json:"include_ai,omitempty"`
	// Manual marks a user-initiated check, which gets the larger text budget.
	Manual bool `json:"manual,omitempty"`
}

// Validate applies the limits gin binding tags cannot express.
func (r *CheckSuggestionsRequest) Validate() error {
	limit := MaxAutoCheckChars
	if r.Manual {
		limit = MaxManualCheckChars
	}
	if len(r.Text) > limit {
		return fmt.Errorf("text exceeds %d character limit", limit)
	}
	if r.WritingContext != nil {
		return validateDocumentType(r.WritingContext.DocumentType)
	}
	return nil
}

type CheckSuggestionsResponse struct {
	Success          bool                       `json:"success"`
	Suggestions      model.ProcessedSuggestions `json:"suggestions"`
	Stats            model.SuggestionStats      `json:"stats"`
	DetectedLanguage string                     `json:"detected_language,omitempty"`
	AIStats          *ai.Stats                  `json:"ai_stats,omitempty"`
	ServiceStatus    ai.ServiceStatus           `json:"service_status"`
	ProcessingTimeMs int64                      `json:"processing_time_ms"`
}

type AISuggestionsRequest struct {
	Text       string `json:"text" binding:"required"`
	DocumentID string `json:"document_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`

	WritingContext *model.WritingContext   `json:"writing_context" binding:"required"`
	Preferences    *model.CheckPreferences `json:"preferences,omitempty"`
	UserGoals      []string                `json:"user_goals,omitempty"`
	// Segment scopes generation to a substring of Text.
	Segment string `json:"segment,omitempty"`
}

func (r *AISuggestionsRequest) Validate() error {
	if len(r.Text) > MaxManualCheckChars {
		return fmt.Errorf("text exceeds %d character limit", MaxManualCheckChars)
	}
	return validateDocumentType(r.WritingContext.DocumentType)
}

type AISuggestionsResponse struct {
	Success       bool                       `json:"success"`
	Error         string                     `json:"error,omitempty"`
	Suggestions   model.ProcessedSuggestions `json:"suggestions"`
	Stats         model.SuggestionStats      `json:"stats"`
	AIStats       *ai.Stats                  `json:"ai_stats,omitempty"`
	ServiceStatus ai.ServiceStatus           `json:"service_status"`
}

type UpdateSuggestionRequest struct {
	Status      *model.SuggestionStatus `json:"status,omitempty" binding:"omitempty,oneof=active accepted rejected dismissed"`
	IsProcessed *bool                   `json:"is_processed,omitempty"`
}

func (r *UpdateSuggestionRequest) Validate() error {
	if r.Status == nil && r.IsProcessed == nil {
		return fmt.Errorf("at least one of status or is_processed is required")
	}
	return nil
}

type ListSuggestionsResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
	Total       int                `json:"total"`
}

func validateDocumentType(dt model.DocumentType) error {
	switch dt {
	case model.DocumentTypeResearchPaper, model.DocumentTypeDissertation,
		model.DocumentTypeThesis, model.DocumentTypeArticle, model.DocumentTypeOther:
		return nil
	default:
		return fmt.Errorf("unrecognized document_type %q: must be one of research-paper, dissertation, thesis, article, other", dt)
	}
}
