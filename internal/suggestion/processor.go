// Package suggestion implements the pure suggestion pipeline: normalizing raw
// source output into canonical suggestions, computing batch statistics, and
// filtering/sorting processed batches for display.
package suggestion

import (
	"time"

	"wordwise.app/server/internal/model"
)

const (
	DefaultMinConfidence  = 0.5
	DefaultMaxSuggestions = 100
)

// Clock supplies timestamps so processing stays deterministic under test.
type Clock func() time.Time

// IDFunc supplies unique IDs for converted suggestions.
type IDFunc func() int64

// Options tune a single processing call. Construct via DefaultOptions and
// override as needed; Process treats a non-positive MaxSuggestions as the
// default cap and an empty severity list as "allow all".
type Options struct {
	MinConfidence  float64
	MaxSuggestions int
	Severities     []model.Severity
	IgnoreWords    []string
	DisableRules   []string
}

func DefaultOptions() Options {
	return Options{
		MinConfidence:  DefaultMinConfidence,
		MaxSuggestions: DefaultMaxSuggestions,
	}
}

// OptionsFromPreferences maps caller preferences onto processing options,
// applying the documented defaults for absent fields.
func OptionsFromPreferences(prefs *model.CheckPreferences) Options {
	opts := DefaultOptions()
	if prefs == nil {
		return opts
	}
	if prefs.MinConfidence != nil {
		opts.MinConfidence = *prefs.MinConfidence
	}
	if prefs.MaxSuggestions != nil && *prefs.MaxSuggestions > 0 {
		opts.MaxSuggestions = *prefs.MaxSuggestions
	}
	opts.Severities = prefs.Severities
	opts.IgnoreWords = prefs.IgnoreWords
	opts.DisableRules = prefs.DisableRules
	return opts
}

// Processor converts raw source suggestions into canonical batches. It holds
// no state between calls; the injected clock and ID generator are the only
// non-deterministic inputs.
type Processor struct {
	now   Clock
	newID IDFunc
}

func NewProcessor(now Clock, newID IDFunc) *Processor {
	return &Processor{now: now, newID: newID}
}

// Process filters raw suggestions in input order (confidence threshold,
// severity allow-list, ignored words, disabled rules), truncates the
// survivors to the cap keeping the first N, converts them to canonical
// suggestions owned by documentID/userID, and partitions them by type.
//
// Malformed optional fields never fail the call: a missing confidence
// defaults to 0.5 and is clamped to [0,1], an empty replacement falls back
// to the flagged text. A suggestion with an unrecognized type stays in All
// (and in the severity counts) but joins no type partition.
func (p *Processor) Process(raws []model.RawSuggestion, documentID, userID string, opts Options) model.ProcessedSuggestions {
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	allowed := severitySet(opts.Severities)
	ignored := stringSet(opts.IgnoreWords)
	disabled := stringSet(opts.DisableRules)

	var survivors []model.RawSuggestion
	for _, raw := range raws {
		if confidenceOf(raw) < opts.MinConfidence {
			continue
		}
		if allowed != nil && !allowed[raw.Severity] {
			continue
		}
		if ignored[raw.Original] {
			continue
		}
		if raw.Rule != nil && disabled[raw.Rule.ID] {
			continue
		}
		survivors = append(survivors, raw)
	}

	if len(survivors) > maxSuggestions {
		survivors = survivors[:maxSuggestions]
	}

	result := model.EmptyProcessedSuggestions()
	for _, raw := range survivors {
		s := p.convert(raw, documentID, userID)
		result.All = append(result.All, s)
		switch s.Type {
		case model.SuggestionTypeSpelling:
			result.Spelling = append(result.Spelling, s)
		case model.SuggestionTypeGrammar:
			result.Grammar = append(result.Grammar, s)
		case model.SuggestionTypeStyle:
			result.Style = append(result.Style, s)
		case model.SuggestionTypePunctuation:
			result.Punctuation = append(result.Punctuation, s)
		case model.SuggestionTypeAI:
			result.AI = append(result.AI, s)
		}
	}

	result.Stats = ComputeStats(result.All)
	return result
}

func (p *Processor) convert(raw model.RawSuggestion, documentID, userID string) model.Suggestion {
	now := p.now()

	replacement := raw.Suggestion
	if replacement == "" {
		replacement = raw.Original
	}

	s := model.Suggestion{
		ID:          p.newID(),
		DocumentID:  documentID,
		UserID:      userID,
		Type:        raw.Type,
		Original:    raw.Original,
		Suggestion:  replacement,
		Explanation: raw.Explanation,
		Confidence:  clamp01(confidenceOf(raw)),
		Position:    raw.Position,
		Severity:    raw.Severity,
		Status:      model.SuggestionStatusActive,
		IsProcessed: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if raw.Rule != nil {
		s.RuleID = raw.Rule.ID
		s.Category = raw.Rule.Category
	}
	return s
}

// ComputeStats counts a batch by type and severity in a single pass.
// High and critical severities are counted together.
func ComputeStats(all []model.Suggestion) model.SuggestionStats {
	stats := model.SuggestionStats{Total: len(all)}
	for _, s := range all {
		switch s.Type {
		case model.SuggestionTypeSpelling:
			stats.Spelling++
		case model.SuggestionTypeGrammar:
			stats.Grammar++
		case model.SuggestionTypeStyle:
			stats.Style++
		case model.SuggestionTypePunctuation:
			stats.Punctuation++
		case model.SuggestionTypeAI:
			stats.AI++
		}
		switch s.Severity {
		case model.SeverityHigh, model.SeverityCritical:
			stats.HighSeverity++
		case model.SeverityMedium:
			stats.MediumSeverity++
		case model.SeverityLow:
			stats.LowSeverity++
		}
	}
	return stats
}

func confidenceOf(raw model.RawSuggestion) float64 {
	if raw.Confidence == nil {
		return DefaultMinConfidence
	}
	return *raw.Confidence
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func severitySet(severities []model.Severity) map[model.Severity]bool {
	if len(severities) == 0 {
		return nil
	}
	set := make(map[model.Severity]bool, len(severities))
	for _, s := range severities {
		set[s] = true
	}
	return set
}

func stringSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
