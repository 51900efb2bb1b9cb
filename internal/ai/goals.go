package ai

import "wordwise.app/server/internal/model"

// Default writing goals per document type, used when the caller supplies
// none. The AI source is never called with an empty goal list.
var defaultGoalsByDocumentType = map[model.DocumentType][]string{
	model.DocumentTypeResearchPaper: {
		"Strengthen the argumentation and evidence presentation",
		"Improve clarity and precision of academic language",
	},
	model.DocumentTypeDissertation: {
		"Maintain a consistent scholarly voice across chapters",
		"Improve structural coherence and signposting",
	},
	model.DocumentTypeThesis: {
		"Sharpen the thesis statement and supporting claims",
		"Improve flow between sections",
	},
	model.DocumentTypeArticle: {
		"Tighten prose for journal length constraints",
		"Improve readability for a broad academic audience",
	},
}

var fallbackGoals = []string{
	"Improve clarity and conciseness",
	"Maintain an appropriate academic tone",
}

// Academic-level boosts appended on top of the document-type defaults.
var goalsByAcademicLevel = map[model.AcademicLevel][]string{
	model.AcademicLevelPhD:     {"Meet the rigor expected of doctoral-level scholarship"},
	model.AcademicLevelPostdoc: {"Meet the rigor expected of doctoral-level scholarship"},
	model.AcademicLevelGraduate: {
		"Demonstrate command of the field's terminology and conventions",
	},
}

// deriveGoals returns the user's goals, or defaults derived from the writing
// context when none were supplied. The result is never empty.
func deriveGoals(userGoals []string, wc model.WritingContext) []string {
	if len(userGoals) > 0 {
		return userGoals
	}

	goals := defaultGoalsByDocumentType[wc.DocumentType]
	if len(goals) == 0 {
		goals = fallbackGoals
	}

	// Copy before appending so the shared tables are never mutated.
	derived := make([]string, 0, len(goals)+1)
	derived = append(derived, goals...)
	derived = append(derived, goalsByAcademicLevel[wc.AcademicLevel]...)
	return derived
}
