package suggestion

import (
	"sort"
	"strings"

	"wordwise.app/server/internal/model"
)

type SortField string

const (
	SortByCreatedAt  SortField = "createdAt"
	SortByConfidence SortField = "confidence"
	SortBySeverity   SortField = "severity"
	SortByType       SortField = "type"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters narrow an already-processed batch for display. All set fields must
// match (AND). Search matches case-insensitively against the flagged text,
// the replacement, or the explanation.
type Filters struct {
	Type        *model.SuggestionType
	Status      *model.SuggestionStatus
	Severity    *model.Severity
	IsProcessed *bool
	Search      string
}

// Filter returns the suggestions matching all set filters. The input slice is
// never mutated; the result is a fresh slice in input order.
func Filter(suggestions []model.Suggestion, filters Filters) []model.Suggestion {
	search := strings.ToLower(filters.Search)

	result := make([]model.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if filters.Type != nil && s.Type != *filters.Type {
			continue
		}
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		if filters.Severity != nil && s.Severity != *filters.Severity {
			continue
		}
		if filters.IsProcessed != nil && s.IsProcessed != *filters.IsProcessed {
			continue
		}
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		result = append(result, s)
	}
	return result
}

func matchesSearch(s model.Suggestion, search string) bool {
	return strings.Contains(strings.ToLower(s.Original), search) ||
		strings.Contains(strings.ToLower(s.Suggestion), search) ||
		strings.Contains(strings.ToLower(s.Explanation), search)
}

// Sort returns a sorted copy of the suggestions; the input is never mutated
// and the sort is stable. Unrecognized sortBy falls back to createdAt and
// unrecognized order falls back to descending.
func Sort(suggestions []model.Suggestion, sortBy SortField, order SortOrder) []model.Suggestion {
	sorted := make([]model.Suggestion, len(suggestions))
	copy(sorted, suggestions)

	less := lessFunc(sortBy)
	if order != SortAsc {
		inner := less
		less = func(a, b model.Suggestion) bool { return inner(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(sortBy SortField) func(a, b model.Suggestion) bool {
	switch sortBy {
	case SortByConfidence:
		return func(a, b model.Suggestion) bool { return a.Confidence < b.Confidence }
	case SortBySeverity:
		return func(a, b model.Suggestion) bool { return a.Severity.Rank() < b.Severity.Rank() }
	case SortByType:
		return func(a, b model.Suggestion) bool { return a.Type < b.Type }
	default:
		return func(a, b model.Suggestion) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
