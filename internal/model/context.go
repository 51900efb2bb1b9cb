package model

type DocumentType string

const (
	DocumentTypeResearchPaper DocumentType = "research-paper"
	DocumentTypeDissertation  DocumentType = "dissertation"
	DocumentTypeThesis        DocumentType = "thesis"
	DocumentTypeArticle       DocumentType = "article"
	DocumentTypeOther         DocumentType = "other"
)

type AcademicLevel string

const (
	AcademicLevelUndergraduate AcademicLevel = "undergraduate"
	AcademicLevelGraduate      AcademicLevel = "graduate"
	AcademicLevelPhD           AcademicLevel = "phd"
	AcademicLevelPostdoc       AcademicLevel = "postdoc"
)

// AISuggestionType selects which kinds of AI suggestions to request.
// Distinct from SuggestionType: everything the AI source produces lands in
// the "ai" bucket after processing.
type AISuggestionType string

const (
	AISuggestionTypeStyle       AISuggestionType = "style"
	AISuggestionTypeContent     AISuggestionType = "content"
	AISuggestionTypeStructure   AISuggestionType = "structure"
	AISuggestionTypeImprovement AISuggestionType = "improvement"
	AISuggestionTypeClarity     AISuggestionType = "clarity"
)

// WritingContext describes the document being checked so the AI source can
// tailor its suggestions.
type WritingContext struct {
	DocumentType  DocumentType  `json:"document_type"`
	Subject       string        `json:"subject,omitempty"`
	AcademicLevel AcademicLevel `json:"academic_level,omitempty"`
	TargetJournal string        `json:"target_journal,omitempty"`
	// PreviousContext carries up to 200 characters of text preceding a
	// segment when generating segment-scoped suggestions.
	PreviousContext string `json:"previous_context,omitempty"`
}

// CheckPreferences are the caller's tuning knobs for a check request.
type CheckPreferences struct {
	// MinConfidence drops suggestions below this certainty. Nil means the
	// processor default (0.5).
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	// MaxSuggestions caps the surviving batch. Nil means the processor
	// default (100).
	MaxSuggestions *int `json:"max_suggestions,omitempty"`
	// Severities restricts results to the listed severities. Empty means all.
	Severities []Severity `json:"severities,omitempty"`
	// IgnoreWords drops suggestions whose flagged text matches exactly.
	IgnoreWords []string `json:"ignore_words,omitempty"`
	// DisableRules drops suggestions produced by the listed rule IDs.
	DisableRules []string `json:"disable_rules,omitempty"`
}
