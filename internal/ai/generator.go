package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wordwise.app/server/common/logger"
	"wordwise.app/server/internal/model"
	"wordwise.app/server/internal/suggestion"
)

var allSuggestionTypes = []model.AISuggestionType{
	model.AISuggestionTypeStyle,
	model.AISuggestionTypeContent,
	model.AISuggestionTypeStructure,
	model.AISuggestionTypeImprovement,
	model.AISuggestionTypeClarity,
}

// Generator coordinates the AI suggestion source. It never returns an error:
// source failure is the fallback path and produces a grammar-only-compatible
// empty batch, and internal panics are converted into a failed-but-well-formed
// result at the boundary.
type Generator struct {
	source    Source
	processor *suggestion.Processor
}

// NewGenerator creates a Generator. A nil source means the AI path is not
// configured; requests that ask for AI then take the fallback path.
func NewGenerator(source Source, processor *suggestion.Processor) *Generator {
	return &Generator{source: source, processor: processor}
}

// Generate runs one AI suggestion pass over the request text. AI is attempted
// only when the caller opted in, supplied a writing context, and the text is
// long enough to be worth a model call. Whatever raw suggestions the source
// yields (possibly none) are run through the processor so the caller always
// receives a well-formed batch.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (result GenerationResult) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:  "wordwise.ai.generator",
		DocumentID: logger.Ptr(req.DocumentID),
	})

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "ai generation panicked", "panic", r)
			result = GenerationResult{
				Success:     false,
				Error:       fmt.Sprintf("internal error: %v", r),
				Suggestions: model.EmptyProcessedSuggestions(),
			}
		}
	}()

	raws, aiStats, status := g.Collect(ctx, req)

	opts := suggestion.OptionsFromPreferences(req.Preferences)
	if aiMin := effectiveMinConfidence(req); opts.MinConfidence > aiMin {
		opts.MinConfidence = aiMin
	}
	// Generous cap: when merged with grammar output upstream, the default cap
	// must not starve AI results.
	opts.MaxSuggestions = 50 + len(raws)

	return GenerationResult{
		Success:       true,
		Suggestions:   g.processor.Process(raws, req.DocumentID, req.UserID, opts),
		AIStats:       aiStats,
		ServiceStatus: status,
	}
}

// GenerateForSegment generates suggestions for a substring of the document.
// The segment must occur verbatim in the text; otherwise a failed (not
// panicked, not errored) result is returned. Up to 200 characters of
// preceding text ride along as context, and tighter defaults apply.
func (g *Generator) GenerateForSegment(ctx context.Context, req GenerationRequest, segment string) GenerationResult {
	idx := strings.Index(req.Text, segment)
	if segment == "" || idx < 0 {
		return GenerationResult{
			Success:     false,
			Error:       "segment not found in document text",
			Suggestions: model.EmptyProcessedSuggestions(),
		}
	}

	contextStart := idx - segmentContextChars
	if contextStart < 0 {
		contextStart = 0
	}

	segmentReq := req
	segmentReq.Text = segment
	segmentReq.AIMinConfidence = 0.7
	segmentReq.MaxPerType = 2
	segmentReq.SuggestionTypes = []model.AISuggestionType{
		model.AISuggestionTypeStyle,
		model.AISuggestionTypeClarity,
		model.AISuggestionTypeImprovement,
	}
	if req.WritingContext != nil {
		wc := *req.WritingContext
		wc.PreviousContext = req.Text[contextStart:idx]
		segmentReq.WritingContext = &wc
	}

	return g.Generate(ctx, segmentReq)
}

// Collect runs the AI source and returns normalized raw suggestions without
// processing them. Callers that merge AI output with another producer's raws
// use this directly and run one processing pass over the combined set.
// The gating rules match Generate: AI is attempted only when requested, a
// writing context is present, and the text is long enough.
func (g *Generator) Collect(ctx context.Context, req GenerationRequest) ([]model.RawSuggestion, *Stats, ServiceStatus) {
	if !req.IncludeAI || req.WritingContext == nil || len(req.Text) <= minTextLength {
		return nil, nil, ServiceStatus{}
	}

	maxPerType := req.MaxPerType
	if maxPerType <= 0 {
		maxPerType = DefaultMaxPerType
	}
	suggestionTypes := req.SuggestionTypes
	if len(suggestionTypes) == 0 {
		suggestionTypes = allSuggestionTypes
	}

	if g.source == nil {
		slog.WarnContext(ctx, "ai suggestions requested but no source configured")
		return nil, nil, ServiceStatus{FallbackUsed: true}
	}

	sourceResult, err := g.source.Suggest(ctx, SourceRequest{
		Text:            req.Text,
		Context:         *req.WritingContext,
		UserGoals:       deriveGoals(req.UserGoals, *req.WritingContext),
		SuggestionTypes: suggestionTypes,
		MaxPerType:      maxPerType,
		MinConfidence:   effectiveMinConfidence(req),
	})
	if err != nil {
		slog.WarnContext(ctx, "ai source failed, continuing without ai suggestions", "error", err)
		return nil, nil, ServiceStatus{FallbackUsed: true}
	}
	if len(sourceResult.Suggestions) == 0 {
		slog.InfoContext(ctx, "ai source returned no suggestions, continuing without")
		return nil, nil, ServiceStatus{FallbackUsed: true}
	}

	raws := convertSourceSuggestions(req.Text, sourceResult.Suggestions)

	stats := &Stats{
		TotalAISuggestions: len(sourceResult.Suggestions),
		AIProcessingTimeMs: sourceResult.ProcessingTime.Milliseconds(),
		Model:              sourceResult.Model,
		TokenUsage:         sourceResult.TokenUsage,
	}

	slog.InfoContext(ctx, "ai suggestions generated",
		"count", stats.TotalAISuggestions,
		"model", stats.Model,
		"duration_ms", stats.AIProcessingTimeMs)

	return raws, stats, ServiceStatus{AIServiceAvailable: true}
}

func effectiveMinConfidence(req GenerationRequest) float64 {
	if req.AIMinConfidence > 0 {
		return req.AIMinConfidence
	}
	return DefaultMinConfidence
}

// convertSourceSuggestions normalizes AI source output into the raw form.
// The suggestion kind travels in the raw ID; positions come from locating the
// excerpt in the text, falling back to the whole-document origin when the
// model paraphrased instead of quoting.
func convertSourceSuggestions(text string, sourceSuggestions []SourceSuggestion) []model.RawSuggestion {
	raws := make([]model.RawSuggestion, 0, len(sourceSuggestions))
	for i, s := range sourceSuggestions {
		position := model.Position{}
		if idx := strings.Index(text, s.Original); idx >= 0 {
			position = model.Position{Start: idx, End: idx + len(s.Original)}
		}

		severity := s.Severity
		if severity.Rank() == 0 {
			severity = model.SeverityMedium
		}

		confidence := s.Confidence
		raws = append(raws, model.RawSuggestion{
			ID:          fmt.Sprintf("ai-%s-%d", s.Kind, i),
			Type:        model.SuggestionTypeAI,
			Original:    s.Original,
			Suggestion:  s.Suggestion,
			Explanation: s.Explanation,
			Confidence:  &confidence,
			Position:    position,
			Severity:    severity,
		})
	}
	return raws
}
