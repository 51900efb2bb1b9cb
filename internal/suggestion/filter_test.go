package suggestion_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wordwise.app/server/internal/model"
	"wordwise.app/server/internal/suggestion"
)

var _ = Describe("Filter and Sort", func() {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	batch := func() []model.Suggestion {
		return []model.Suggestion{
			{
				ID: 1, Type: model.SuggestionTypeSpelling, Status: model.SuggestionStatusActive,
				Severity: model.SeverityHigh, Confidence: 0.9, Original: "teh", Suggestion: "the",
				IsProcessed: false, CreatedAt: base,
			},
			{
				ID: 2, Type: model.SuggestionTypeStyle, Status: model.SuggestionStatusAccepted,
				Severity: model.SeverityLow, Confidence: 0.6, Original: "very unique",
				Suggestion: "unique", Explanation: "Redundant intensifier",
				IsProcessed: true, CreatedAt: base.Add(time.Minute),
			},
			{
				ID: 3, Type: model.SuggestionTypeGrammar, Status: model.SuggestionStatusActive,
				Severity: model.SeverityCritical, Confidence: 0.8, Original: "has went",
				Suggestion: "has gone", IsProcessed: false, CreatedAt: base.Add(2 * time.Minute),
			},
		}
	}

	Describe("Filter", func() {
		It("returns everything when no filters are set", func() {
			Expect(suggestion.Filter(batch(), suggestion.Filters{})).To(HaveLen(3))
		})

		It("ANDs all set filters", func() {
			status := model.SuggestionStatusActive
			severity := model.SeverityCritical

			result := suggestion.Filter(batch(), suggestion.Filters{
				Status:   &status,
				Severity: &severity,
			})

			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(int64(3)))
		})

		It("filters by type", func() {
			t := model.SuggestionTypeStyle
			result := suggestion.Filter(batch(), suggestion.Filters{Type: &t})

			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(int64(2)))
		})

		It("filters by processed flag", func() {
			processed := true
			result := suggestion.Filter(batch(), suggestion.Filters{IsProcessed: &processed})

			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(int64(2)))
		})

		DescribeTable("searches case-insensitively across text fields",
			func(search string, wantIDs []int64) {
				result := suggestion.Filter(batch(), suggestion.Filters{Search: search})
				ids := make([]int64, len(result))
				for i, s := range result {
					ids[i] = s.ID
				}
				Expect(ids).To(Equal(wantIDs))
			},
			Entry("matches the flagged text", "TEH", []int64{1}),
			Entry("matches the replacement", "has GONE", []int64{3}),
			Entry("matches the explanation", "redundant", []int64{2}),
			Entry("matches nothing", "zucchini", []int64{}),
		)

		It("preserves input order and does not mutate the input", func() {
			input := batch()
			severity := model.SeverityLow

			_ = suggestion.Filter(input, suggestion.Filters{Severity: &severity})

			Expect(input).To(HaveLen(3))
			Expect(input[0].ID).To(Equal(int64(1)))
		})

		It("is idempotent", func() {
			status := model.SuggestionStatusActive
			filters := suggestion.Filters{Status: &status}

			once := suggestion.Filter(batch(), filters)
			twice := suggestion.Filter(once, filters)

			Expect(twice).To(Equal(once))
		})
	})

	Describe("Sort", func() {
		It("defaults to newest first", func() {
			result := suggestion.Sort(batch(), "", "")

			Expect(result[0].ID).To(Equal(int64(3)))
			Expect(result[2].ID).To(Equal(int64(1)))
		})

		It("sorts by confidence ascending", func() {
			result := suggestion.Sort(batch(), suggestion.SortByConfidence, suggestion.SortAsc)

			Expect(result[0].Confidence).To(Equal(0.6))
			Expect(result[2].Confidence).To(Equal(0.9))
		})

		It("sorts by severity using the explicit order, not lexicographically", func() {
			result := suggestion.Sort(batch(), suggestion.SortBySeverity, suggestion.SortDesc)

			Expect(result[0].Severity).To(Equal(model.SeverityCritical))
			Expect(result[1].Severity).To(Equal(model.SeverityHigh))
			Expect(result[2].Severity).To(Equal(model.SeverityLow))
		})

		It("sorts by type", func() {
			result := suggestion.Sort(batch(), suggestion.SortByType, suggestion.SortAsc)

			Expect(result[0].Type).To(Equal(model.SuggestionTypeGrammar))
			Expect(result[1].Type).To(Equal(model.SuggestionTypeSpelling))
			Expect(result[2].Type).To(Equal(model.SuggestionTypeStyle))
		})

		It("is stable for equal keys", func() {
			input := batch()
			input[1].Confidence = 0.9 // tie with ID 1

			result := suggestion.Sort(input, suggestion.SortByConfidence, suggestion.SortDesc)

			Expect(result[0].ID).To(Equal(int64(1)))
			Expect(result[1].ID).To(Equal(int64(2)))
		})

		It("does not mutate the input", func() {
			input := batch()
			_ = suggestion.Sort(input, suggestion.SortByConfidence, suggestion.SortAsc)

			Expect(input[0].ID).To(Equal(int64(1)))
			Expect(input[1].ID).To(Equal(int64(2)))
		})
	})
})
