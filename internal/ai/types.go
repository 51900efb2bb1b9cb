// Package ai coordinates the LLM suggestion source: deriving writing goals,
// calling the source, converting its output into raw suggestions, and falling
// back gracefully when the source is unavailable.
package ai

import (
	"context"
	"time"

	"wordwise.app/server/internal/model"
)

const (
	DefaultMinConfidence = 0.6
	DefaultMaxPerType    = 3

	// minTextLength is the shortest text worth sending to the AI source.
	minTextLength = 10

	// segmentContextChars caps how much preceding text rides along with a
	// segment-scoped request.
	segmentContextChars = 200
)

// GenerationRequest asks for AI suggestions over a document's text.
type GenerationRequest struct {
	Text           string
	Language       string
	DocumentID     string
	UserID         string
	Preferences    *model.CheckPreferences
	WritingContext *model.WritingContext
	UserGoals      []string
	// SuggestionTypes restricts what the AI source is asked for.
	// Empty means all five kinds.
	SuggestionTypes []model.AISuggestionType
	IncludeAI       bool
	// AIMinConfidence drops AI suggestions below this certainty (default 0.6).
	AIMinConfidence float64
	// MaxPerType caps suggestions per requested kind (default 3).
	MaxPerType int
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Stats reports what the AI source did for one generation call.
type Stats struct {
	TotalAISuggestions int         `json:"total_ai_suggestions"`
	AIProcessingTimeMs int64       `json:"ai_processing_time_ms"`
	Model              string      `json:"model"`
	TokenUsage         *TokenUsage `json:"token_usage,omitempty"`
}

// ServiceStatus tells the caller which upstream sources answered.
// FallbackUsed is true only when AI was attempted and failed; skipping AI
// because it was never requested (or not applicable) is not a fallback.
type ServiceStatus struct {
	GrammarServiceAvailable bool `json:"grammar_service_available"`
	AIServiceAvailable      bool `json:"ai_service_available"`
	FallbackUsed            bool `json:"fallback_used"`
}

// GenerationResult is always well-formed: Suggestions carries a valid (possibly
// empty) batch even when Success is false.
type GenerationResult struct {
	Success       bool
	Error         string
	Suggestions   model.ProcessedSuggestions
	AIStats       *Stats
	ServiceStatus ServiceStatus
}

// SourceRequest is the derived request actually sent to the AI source.
type SourceRequest struct {
	Text            string
	Context         model.WritingContext
	UserGoals       []string
	SuggestionTypes []model.AISuggestionType
	MaxPerType      int
	MinConfidence   float64
}

// SourceSuggestion preserves the AI source's provenance before normalization.
type SourceSuggestion struct {
	Kind        model.AISuggestionType
	Original    string
	Suggestion  string
	Explanation string
	Confidence  float64
	Severity    model.Severity
}

type SourceResult struct {
	Suggestions    []SourceSuggestion
	Model          string
	TokenUsage     *TokenUsage
	ProcessingTime time.Duration
}

// Source is the AI suggestion backend. The production implementation wraps
// the structured-output LLM client; tests substitute a function mock.
type Source interface {
	Suggest(ctx context.Context, req SourceRequest) (*SourceResult, error)
}
