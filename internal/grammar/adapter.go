package grammar

import (
	"fmt"

	"wordwise.app/server/internal/model"
)

// Confidence heuristics per issue type. The grammar API reports no certainty
// of its own; spelling rules are near-deterministic while style rules are
// opinionated, so we scale accordingly.
var issueConfidence = map[string]float64{
	"misspelling":   0.9,
	"grammar":       0.85,
	"duplication":   0.8,
	"typographical": 0.75,
	"whitespace":    0.75,
	"redundancy":    0.65,
	"style":         0.6,
	"register":      0.6,
}

const defaultIssueConfidence = 0.7

// adaptMatches converts grammar API matches into raw suggestions, preserving
// the left-to-right text order the API reports.
func adaptMatches(text string, matches []match) []model.RawSuggestion {
	raws := make([]model.RawSuggestion, 0, len(matches))
	for i, m := range matches {
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || end > len(text) || start > end {
			continue
		}

		original := text[start:end]
		if original == "" {
			continue
		}

		replacement := original
		if len(m.Replacements) > 0 {
			replacement = m.Replacements[0].Value
		}

		confidence := issueConfidence[m.Rule.IssueType]
		if confidence == 0 {
			confidence = defaultIssueConfidence
		}

		raws = append(raws, model.RawSuggestion{
			ID:          fmt.Sprintf("%s-%d", m.Rule.ID, i),
			Type:        typeForIssue(m.Rule.IssueType),
			Original:    original,
			Suggestion:  replacement,
			Explanation: m.Message,
			Confidence:  &confidence,
			Position:    model.Position{Start: start, End: end},
			Severity:    severityForIssue(m.Rule.IssueType),
			Rule: &model.Rule{
				ID:        m.Rule.ID,
				Name:      m.Rule.Description,
				Category:  m.Rule.Category.Name,
				IssueType: m.Rule.IssueType,
			},
		})
	}
	return raws
}

func typeForIssue(issueType string) model.SuggestionType {
	switch issueType {
	case "misspelling":
		return model.SuggestionTypeSpelling
	case "typographical", "whitespace":
		return model.SuggestionTypePunctuation
	case "style", "redundancy", "register", "locale-violation":
		return model.SuggestionTypeStyle
	default:
		return model.SuggestionTypeGrammar
	}
}

func severityForIssue(issueType string) model.Severity {
	switch issueType {
	case "misspelling", "grammar":
		return model.SeverityHigh
	case "typographical", "whitespace", "duplication":
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
