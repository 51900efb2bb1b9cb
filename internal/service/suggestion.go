// Package service orchestrates the suggestion pipeline: grammar check, the
// optional AI pass, one processing call over the merged raw suggestions, and
// persistence of the resulting batch.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wordwise.app/server/common/logger"
	"wordwise.app/server/internal/ai"
	"wordwise.app/server/internal/grammar"
	"wordwise.app/server/internal/model"
	"wordwise.app/server/internal/store"
	"wordwise.app/server/internal/suggestion"
)

type CheckParams struct {
	Text       string
	Language   string
	DocumentID string
	UserID     string

	Preferences    *model.CheckPreferences
	WritingContext *model.WritingContext
	UserGoals      []string
	IncludeAI      bool
}

type CheckResult struct {
	Suggestions      model.ProcessedSuggestions
	DetectedLanguage string
	AIStats          *ai.Stats
	ServiceStatus    ai.ServiceStatus
	ProcessingTimeMs int64
}

type AIParams struct {
	Text       string
	DocumentID string
	UserID     string

	Preferences    *model.CheckPreferences
	WritingContext *model.WritingContext
	UserGoals      []string
	// Segment scopes generation to a substring of Text when non-empty.
	Segment string
}

type ListParams struct {
	DocumentID string
	Filters    suggestion.Filters
	SortBy     suggestion.SortField
	SortOrder  suggestion.SortOrder
}

type UpdateSuggestionParams struct {
	Status      *model.SuggestionStatus
	IsProcessed *bool
}

type SuggestionService interface {
	Check(ctx context.Context, params CheckParams) (*CheckResult, error)
	GenerateAI(ctx context.Context, params AIParams) *ai.GenerationResult
	List(ctx context.Context, params ListParams) ([]model.Suggestion, error)
	Update(ctx context.Context, id int64, params UpdateSuggestionParams) (*model.Suggestion, error)
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}

type suggestionService struct {
	suggestions store.SuggestionStore
	checker     grammar.Checker
	generator   *ai.Generator
	processor   *suggestion.Processor
}

func NewSuggestionService(suggestions store.SuggestionStore, checker grammar.Checker, generator *ai.Generator, processor *suggestion.Processor) SuggestionService {
	return &suggestionService{
		suggestions: suggestions,
		checker:     checker,
		generator:   generator,
		processor:   processor,
	}
}

// Check runs the grammar source and, when requested, the AI source, then
// normalizes the combined raw suggestions in a single processing pass.
// Grammar failure is an error to the caller; AI failure degrades to a
// grammar-only result with the fallback flagged.
func (s *suggestionService) Check(ctx context.Context, params CheckParams) (*CheckResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:  "wordwise.service.suggestion",
		DocumentID: logger.Ptr(params.DocumentID),
		UserID:     logger.Ptr(params.UserID),
		Language:   logger.Ptr(params.Language),
	})
	start := time.Now()

	grammarResult, err := s.checker.Check(ctx, grammar.CheckRequest{
		Text:          params.Text,
		Language:      params.Language,
		DisabledRules: disabledRules(params.Preferences),
	})
	if err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}

	raws := grammarResult.Suggestions
	aiRaws, aiStats, status := s.generator.Collect(ctx, ai.GenerationRequest{
		Text:           params.Text,
		Language:       params.Language,
		DocumentID:     params.DocumentID,
		UserID:         params.UserID,
		Preferences:    params.Preferences,
		WritingContext: params.WritingContext,
		UserGoals:      params.UserGoals,
		IncludeAI:      params.IncludeAI,
	})
	status.GrammarServiceAvailable = true
	raws = append(raws, aiRaws...)

	opts := suggestion.OptionsFromPreferences(params.Preferences)
	if aiStats != nil {
		if opts.MinConfidence > ai.DefaultMinConfidence {
			opts.MinConfidence = ai.DefaultMinConfidence
		}
		opts.MaxSuggestions = 50 + aiStats.TotalAISuggestions
	}

	processed := s.processor.Process(raws, params.DocumentID, params.UserID, opts)
	s.persist(ctx, processed.All)

	return &CheckResult{
		Suggestions:      processed,
		DetectedLanguage: grammarResult.DetectedLanguage,
		AIStats:          aiStats,
		ServiceStatus:    status,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// GenerateAI runs the AI coordinator on its own. The result is always
// well-formed; failures show up as Success=false, never as an error.
func (s *suggestionService) GenerateAI(ctx context.Context, params AIParams) *ai.GenerationResult {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:  "wordwise.service.suggestion",
		DocumentID: logger.Ptr(params.DocumentID),
		UserID:     logger.Ptr(params.UserID),
	})

	req := ai.GenerationRequest{
		Text:           params.Text,
		DocumentID:     params.DocumentID,
		UserID:         params.UserID,
		Preferences:    params.Preferences,
		WritingContext: params.WritingContext,
		UserGoals:      params.UserGoals,
		IncludeAI:      true,
	}

	var result ai.GenerationResult
	if params.Segment != "" {
		result = s.generator.GenerateForSegment(ctx, req, params.Segment)
	} else {
		result = s.generator.Generate(ctx, req)
	}

	if result.Success {
		s.persist(ctx, result.Suggestions.All)
	}
	return &result
}

func (s *suggestionService) List(ctx context.Context, params ListParams) ([]model.Suggestion, error) {
	filter := store.ListFilter{Status: params.Filters.Status}
	suggestions, err := s.suggestions.ListByDocument(ctx, params.DocumentID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}

	suggestions = suggestion.Filter(suggestions, params.Filters)
	return suggestion.Sort(suggestions, params.SortBy, params.SortOrder), nil
}

func (s *suggestionService) Update(ctx context.Context, id int64, params UpdateSuggestionParams) (*model.Suggestion, error) {
	return s.suggestions.Update(ctx, id, store.UpdateParams{
		Status:      params.Status,
		IsProcessed: params.IsProcessed,
	})
}

func (s *suggestionService) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	return s.suggestions.DeleteByDocument(ctx, documentID)
}

// persist writes the processed batch. A storage failure does not invalidate
// the check result the caller is waiting on, so it is logged and swallowed.
func (s *suggestionService) persist(ctx context.Context, suggestions []model.Suggestion) {
	if s.suggestions == nil || len(suggestions) == 0 {
		return
	}
	if err := s.suggestions.CreateBatch(ctx, suggestions); err != nil {
		slog.ErrorContext(ctx, "persisting suggestion batch failed", "error", err, "count", len(suggestions))
	}
}

func disabledRules(prefs *model.CheckPreferences) []string {
	if prefs == nil {
		return nil
	}
	return prefs.DisableRules
}
