package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"wordwise.app/server/common/llm"
	"wordwise.app/server/common/logger"
	"wordwise.app/server/internal/model"
)

// llmSource generates writing suggestions through the structured-output chat
// client. One Chat call per generation request; no retries here.
type llmSource struct {
	client    llm.Client
	maxTokens int
}

func NewLLMSource(client llm.Client, maxTokens int) Source {
	return &llmSource{client: client, maxTokens: maxTokens}
}

// suggestionPayload is the strict response schema the model must fill.
type suggestionPayload struct {
	Suggestions []suggestionItem `json:"suggestions" jsonschema:"required,description=Writing suggestions for the provided text"`
}

type suggestionItem struct {
	Kind        string  `json:"kind" jsonschema:"required,enum=style,enum=content,enum=structure,enum=improvement,enum=clarity"`
	Original    string  `json:"original" jsonschema:"required,description=Exact excerpt from the text this suggestion applies to"`
	Suggestion  string  `json:"suggestion" jsonschema:"required,description=Proposed replacement text. Repeat the excerpt verbatim for commentary with no rewrite."`
	Explanation string  `json:"explanation" jsonschema:"required,description=Why this change improves the writing"`
	Confidence  float64 `json:"confidence" jsonschema:"required,description=Certainty between 0 and 1"`
	Severity    string  `json:"severity" jsonschema:"required,enum=low,enum=medium,enum=high,enum=critical"`
}

func (s *llmSource) Suggest(ctx context.Context, req SourceRequest) (*SourceResult, error) {
	sc := logger.StartSpan(ctx, "wordwise.ai.suggest", trace.WithSpanKind(trace.SpanKindClient))
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()

	var payload suggestionPayload
	resp, err := s.client.Chat(ctx, llm.Request{
		SystemPrompt: suggestionSystemPrompt,
		UserPrompt:   buildUserPrompt(req),
		SchemaName:   "writing_suggestions",
		Schema:       llm.GenerateSchema[suggestionPayload](),
		MaxTokens:    s.maxTokens,
		Temperature:  llm.Temp(0.3),
	}, &payload)
	if err != nil {
		sc.RecordError(err)
		if llm.IsRetryable(ctx, err) {
			return nil, fmt.Errorf("ai suggestion chat (transient): %w", err)
		}
		return nil, fmt.Errorf("ai suggestion chat: %w", err)
	}

	suggestions := make([]SourceSuggestion, 0, len(payload.Suggestions))
	for _, item := range payload.Suggestions {
		if item.Original == "" {
			continue
		}
		suggestions = append(suggestions, SourceSuggestion{
			Kind:        model.AISuggestionType(item.Kind),
			Original:    item.Original,
			Suggestion:  item.Suggestion,
			Explanation: item.Explanation,
			Confidence:  item.Confidence,
			Severity:    model.Severity(item.Severity),
		})
	}

	return &SourceResult{
		Suggestions: suggestions,
		Model:       s.client.Model(),
		TokenUsage: &TokenUsage{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.PromptTokens + resp.CompletionTokens,
		},
		ProcessingTime: time.Since(start),
	}, nil
}

func buildUserPrompt(req SourceRequest) string {
	var sb strings.Builder

	sb.WriteString("## Writing Context\n\n")
	sb.WriteString(fmt.Sprintf("- Document type: %s\n", req.Context.DocumentType))
	if req.Context.Subject != "" {
		sb.WriteString(fmt.Sprintf("- Subject: %s\n", req.Context.Subject))
	}
	if req.Context.AcademicLevel != "" {
		sb.WriteString(fmt.Sprintf("- Academic level: %s\n", req.Context.AcademicLevel))
	}
	if req.Context.TargetJournal != "" {
		sb.WriteString(fmt.Sprintf("- Target journal: %s\n", req.Context.TargetJournal))
	}
	sb.WriteString("\n")

	sb.WriteString("## Writing Goals\n\n")
	for _, goal := range req.UserGoals {
		sb.WriteString(fmt.Sprintf("- %s\n", goal))
	}
	sb.WriteString("\n")

	sb.WriteString("## Instructions\n\n")
	kinds := make([]string, len(req.SuggestionTypes))
	for i, t := range req.SuggestionTypes {
		kinds[i] = string(t)
	}
	sb.WriteString(fmt.Sprintf("- Requested suggestion kinds: %s\n", strings.Join(kinds, ", ")))
	sb.WriteString(fmt.Sprintf("- At most %d suggestions per kind\n", req.MaxPerType))
	sb.WriteString(fmt.Sprintf("- Only include suggestions you are at least %.0f%% confident in\n", req.MinConfidence*100))
	sb.WriteString("\n")

	if req.Context.PreviousContext != "" {
		sb.WriteString("## Preceding Text (context only, do not suggest changes here)\n\n")
		sb.WriteString(req.Context.PreviousContext)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Text to Review\n\n")
	sb.WriteString(req.Text)

	return sb.String()
}

const suggestionSystemPrompt = `You are an academic writing assistant reviewing a passage of scholarly prose.

You are given the writing context (document type, subject, academic level), the author's goals, and the text to review. Produce targeted suggestions of the requested kinds.

Rules:
- "original" must be an exact, contiguous excerpt of the text to review. Never paraphrase it.
- Keep excerpts short: a phrase or sentence, not a paragraph.
- "suggestion" is the full replacement for the excerpt. For structural commentary with no concrete rewrite, repeat the excerpt verbatim.
- Ground every explanation in the stated goals and context. No generic advice.
- Respect the per-kind limit. Fewer good suggestions beat many weak ones.
- Output valid JSON matching the schema.`
