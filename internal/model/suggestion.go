package model

import "time"

type SuggestionType string

const (
	SuggestionTypeSpelling    SuggestionType = "spelling"
	SuggestionTypeGrammar     SuggestionType = "grammar"
	SuggestionTypeStyle       SuggestionType = "style"
	SuggestionTypePunctuation SuggestionType = "punctuation"
	SuggestionTypeAI          SuggestionType = "ai"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for sorting. Unknown severities rank below low.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the position of s in the severity total order
// (low < medium < high < critical). Unknown severities return 0.
func (s Severity) Rank() int {
	return severityRank[s]
}

type SuggestionStatus string

const (
	SuggestionStatusActive    SuggestionStatus = "active"
	SuggestionStatusAccepted  SuggestionStatus = "accepted"
	SuggestionStatusRejected  SuggestionStatus = "rejected"
	SuggestionStatusDismissed SuggestionStatus = "dismissed"
)

// Position holds character offsets into the checked text.
// Invariant: 0 <= Start <= End.
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Rule carries provenance for rule-based (grammar) suggestions.
type Rule struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	IssueType string `json:"issue_type"`
}

// RawSuggestion is the producer-agnostic intermediate form emitted by the
// grammar and AI source adapters. It lives for exactly one processing call.
type RawSuggestion struct {
	ID          string         `json:"id"`
	Type        SuggestionType `json:"type"`
	Original    string         `json:"original"`
	Suggestion  string         `json:"suggestion"`
	Explanation string         `json:"explanation"`
	// Confidence is the producer's certainty in [0,1]. Nil means the producer
	// reported none; the processor substitutes its default.
	Confidence *float64 `json:"confidence,omitempty"`
	Position   Position `json:"position"`
	Severity   Severity `json:"severity"`
	Rule       *Rule    `json:"rule,omitempty"`
}

// Suggestion is the canonical, display-ready form of a writing suggestion.
// Once produced by the processor it is immutable; status and is_processed
// change only through the store's update path, which bumps UpdatedAt.
type Suggestion struct {
	ID          int64            `json:"id,string"`
	DocumentID  string           `json:"document_id"`
	UserID      string           `json:"user_id"`
	Type        SuggestionType   `json:"type"`
	Original    string           `json:"original"`
	Suggestion  string           `json:"suggestion"`
	Explanation string           `json:"explanation,omitempty"`
	Confidence  float64          `json:"confidence"`
	Position    Position         `json:"position"`
	Severity    Severity         `json:"severity"`
	Status      SuggestionStatus `json:"status"`
	RuleID      string           `json:"rule_id,omitempty"`
	Category    string           `json:"category,omitempty"`
	IsProcessed bool             `json:"is_processed"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SuggestionStats aggregates counts over a processed batch.
// HighSeverity counts both high and critical suggestions.
type SuggestionStats struct {
	Total          int `json:"total"`
	Spelling       int `json:"spelling"`
	Grammar        int `json:"grammar"`
	Style          int `json:"style"`
	Punctuation    int `json:"punctuation"`
	AI             int `json:"ai"`
	HighSeverity   int `json:"high_severity"`
	MediumSeverity int `json:"medium_severity"`
	LowSeverity    int `json:"low_severity"`
}

// ProcessedSuggestions partitions one processed batch by type. Every
// suggestion appears exactly once in All and, when its type is one of the
// five known values, exactly once in the matching partition. Input order is
// preserved throughout; nothing here re-sorts.
type ProcessedSuggestions struct {
	Spelling    []Suggestion    `json:"spelling"`
	Grammar     []Suggestion    `json:"grammar"`
	Style       []Suggestion    `json:"style"`
	Punctuation []Suggestion    `json:"punctuation"`
	AI          []Suggestion    `json:"ai"`
	All         []Suggestion    `json:"all"`
	Stats       SuggestionStats `json:"stats"`
}

// EmptyProcessedSuggestions returns a well-formed zero batch. Handlers rely
// on this so an error response still carries a renderable suggestions shape.
func EmptyProcessedSuggestions() ProcessedSuggestions {
	return ProcessedSuggestions{
		Spelling:    []Suggestion{},
		Grammar:     []Suggestion{},
		Style:       []Suggestion{},
		Punctuation: []Suggestion{},
		AI:          []Suggestion{},
		All:         []Suggestion{},
	}
}
