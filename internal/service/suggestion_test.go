package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wordwise.app/server/internal/ai"
	"wordwise.app/server/internal/grammar"
	"wordwise.app/server/internal/model"
	"wordwise.app/server/internal/service"
	"wordwise.app/server/internal/store"
	"wordwise.app/server/internal/suggestion"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("SuggestionService", func() {
	var (
		ctx     context.Context
		checker *mockChecker
		source  *mockSource
		st      *mockSuggestionStore
		svc     service.SuggestionService
	)

	const text = "The experiment results was very significant for our hypothesis."

	grammarRaw := func(original string, confidence float64) model.RawSuggestion {
		return model.RawSuggestion{
			ID:         "R-0",
			Type:       model.SuggestionTypeGrammar,
			Original:   original,
			Suggestion: "were",
			Confidence: &confidence,
			Severity:   model.SeverityHigh,
			Rule:       &model.Rule{ID: "AGREEMENT", Category: "Grammar"},
		}
	}

	build := func() service.SuggestionService {
		var nextID int64
		processor := suggestion.NewProcessor(
			func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) },
			func() int64 { nextID++; return nextID },
		)
		generator := ai.NewGenerator(source, processor)
		return service.NewSuggestionService(st, checker, generator, processor)
	}

	BeforeEach(func() {
		ctx = context.Background()
		checker = &mockChecker{}
		source = &mockSource{}
		st = &mockSuggestionStore{}
		svc = build()
	})

	Describe("Check", func() {
		It("returns an error when the grammar source fails", func() {
			checker.checkFn = func(context.Context, grammar.CheckRequest) (*grammar.CheckResult, error) {
				return nil, errors.New("upstream down")
			}

			_, err := svc.Check(ctx, service.CheckParams{Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("grammar check"))
		})

		It("processes grammar suggestions and persists the batch", func() {
			checker.checkFn = func(_ context.Context, req grammar.CheckRequest) (*grammar.CheckResult, error) {
				Expect(req.Text).To(Equal(text))
				Expect(req.Language).To(Equal("en-US"))
				return &grammar.CheckResult{
					Suggestions:      []model.RawSuggestion{grammarRaw("was", 0.85)},
					DetectedLanguage: "en-US",
				}, nil
			}

			var persisted []model.Suggestion
			st.createBatchFn = func(_ context.Context, batch []model.Suggestion) error {
				persisted = batch
				return nil
			}

			result, err := svc.Check(ctx, service.CheckParams{Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Suggestions.Grammar).To(HaveLen(1))
			Expect(result.Suggestions.Stats.Grammar).To(Equal(1))
			Expect(result.DetectedLanguage).To(Equal("en-US"))
			Expect(result.ServiceStatus.GrammarServiceAvailable).To(BeTrue())
			Expect(result.AIStats).To(BeNil())
			Expect(result.ProcessingTimeMs).To(BeNumerically(">=", 0))

			Expect(persisted).To(HaveLen(1))
			Expect(persisted[0].DocumentID).To(Equal("doc-1"))
			Expect(persisted[0].UserID).To(Equal("user-1"))
		})

		It("forwards disabled rules to the grammar source", func() {
			var captured grammar.CheckRequest
			checker.checkFn = func(_ context.Context, req grammar.CheckRequest) (*grammar.CheckResult, error) {
				captured = req
				return &grammar.CheckResult{}, nil
			}

			_, err := svc.Check(ctx, service.CheckParams{
				Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1",
				Preferences: &model.CheckPreferences{DisableRules: []string{"EN_QUOTES"}},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(captured.DisabledRules).To(ConsistOf("EN_QUOTES"))
		})

		It("merges grammar and AI suggestions through one processing pass", func() {
			checker.checkFn = func(context.Context, grammar.CheckRequest) (*grammar.CheckResult, error) {
				return &grammar.CheckResult{
					Suggestions: []model.RawSuggestion{grammarRaw("was", 0.85)},
				}, nil
			}
			source.suggestFn = func(context.Context, ai.SourceRequest) (*ai.SourceResult, error) {
				return &ai.SourceResult{
					Suggestions: []ai.SourceSuggestion{{
						Kind:        model.AISuggestionTypeClarity,
						Original:    "very significant",
						Suggestion:  "statistically significant",
						Explanation: "Quantify instead of intensifying",
						Confidence:  0.8,
						Severity:    model.SeverityMedium,
					}},
					Model: "gpt-4o-mini",
				}, nil
			}

			result, err := svc.Check(ctx, service.CheckParams{
				Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1",
				IncludeAI:      true,
				WritingContext: &model.WritingContext{DocumentType: model.DocumentTypeResearchPaper},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Suggestions.Grammar).To(HaveLen(1))
			Expect(result.Suggestions.AI).To(HaveLen(1))
			Expect(result.Suggestions.Stats.Total).To(Equal(2))
			Expect(result.AIStats).NotTo(BeNil())
			Expect(result.AIStats.TotalAISuggestions).To(Equal(1))
			Expect(result.ServiceStatus.AIServiceAvailable).To(BeTrue())
			Expect(result.ServiceStatus.GrammarServiceAvailable).To(BeTrue())
		})

		It("degrades to grammar-only when the AI source fails", func() {
			checker.checkFn = func(context.Context, grammar.CheckRequest) (*grammar.CheckResult, error) {
				return &grammar.CheckResult{
					Suggestions: []model.RawSuggestion{grammarRaw("was", 0.85)},
				}, nil
			}
			source.suggestFn = func(context.Context, ai.SourceRequest) (*ai.SourceResult, error) {
				return nil, errors.New("model overloaded")
			}

			result, err := svc.Check(ctx, service.CheckParams{
				Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1",
				IncludeAI:      true,
				WritingContext: &model.WritingContext{DocumentType: model.DocumentTypeThesis},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Suggestions.Grammar).To(HaveLen(1))
			Expect(result.Suggestions.AI).To(BeEmpty())
			Expect(result.ServiceStatus.FallbackUsed).To(BeTrue())
			Expect(result.ServiceStatus.AIServiceAvailable).To(BeFalse())
		})

		It("still answers when persistence fails", func() {
			checker.checkFn = func(context.Context, grammar.CheckRequest) (*grammar.CheckResult, error) {
				return &grammar.CheckResult{
					Suggestions: []model.RawSuggestion{grammarRaw("was", 0.85)},
				}, nil
			}
			st.createBatchFn = func(context.Context, []model.Suggestion) error {
				return errors.New("connection reset")
			}

			result, err := svc.Check(ctx, service.CheckParams{Text: text, Language: "en-US", DocumentID: "doc-1", UserID: "user-1"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Suggestions.Grammar).To(HaveLen(1))
		})
	})

	Describe("GenerateAI", func() {
		It("persists successful generations", func() {
			source.suggestFn = func(context.Context, ai.SourceRequest) (*ai.SourceResult, error) {
				return &ai.SourceResult{
					Suggestions: []ai.SourceSuggestion{{
						Kind:       model.AISuggestionTypeStyle,
						Original:   "hypothesis",
						Suggestion: "hypotheses",
						Confidence: 0.9,
						Severity:   model.SeverityLow,
					}},
				}, nil
			}

			var persisted []model.Suggestion
			st.createBatchFn = func(_ context.Context, batch []model.Suggestion) error {
				persisted = batch
				return nil
			}

			result := svc.GenerateAI(ctx, service.AIParams{
				Text: text, DocumentID: "doc-1", UserID: "user-1",
				WritingContext: &model.WritingContext{DocumentType: model.DocumentTypeArticle},
			})

			Expect(result.Success).To(BeTrue())
			Expect(result.Suggestions.AI).To(HaveLen(1))
			Expect(persisted).To(HaveLen(1))
		})

		It("routes segment requests through segment generation", func() {
			var captured ai.SourceRequest
			source.suggestFn = func(_ context.Context, req ai.SourceRequest) (*ai.SourceResult, error) {
				captured = req
				return &ai.SourceResult{}, nil
			}

			result := svc.GenerateAI(ctx, service.AIParams{
				Text: text, DocumentID: "doc-1", UserID: "user-1",
				WritingContext: &model.WritingContext{DocumentType: model.DocumentTypeArticle},
				Segment:        "very significant for our hypothesis.",
			})

			Expect(result.Success).To(BeTrue())
			Expect(captured.Text).To(Equal("very significant for our hypothesis."))
			Expect(captured.MaxPerType).To(Equal(2))
		})

		It("reports a failed result for an unknown segment instead of erroring", func() {
			result := svc.GenerateAI(ctx, service.AIParams{
				Text: text, DocumentID: "doc-1", UserID: "user-1",
				WritingContext: &model.WritingContext{DocumentType: model.DocumentTypeArticle},
				Segment:        "nowhere to be found",
			})

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("segment not found"))
		})
	})

	Describe("List", func() {
		It("pushes the status filter down and applies the rest in memory", func() {
			var capturedFilter store.ListFilter
			st.listByDocumentFn = func(_ context.Context, documentID string, filter store.ListFilter) ([]model.Suggestion, error) {
				Expect(documentID).To(Equal("doc-1"))
				capturedFilter = filter
				return []model.Suggestion{
					{ID: 1, Type: model.SuggestionTypeSpelling, Status: model.SuggestionStatusActive, Confidence: 0.9},
					{ID: 2, Type: model.SuggestionTypeStyle, Status: model.SuggestionStatusActive, Confidence: 0.6},
				}, nil
			}

			status := model.SuggestionStatusActive
			styleType := model.SuggestionTypeStyle
			result, err := svc.List(ctx, service.ListParams{
				DocumentID: "doc-1",
				Filters:    suggestion.Filters{Status: &status, Type: &styleType},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(capturedFilter.Status).To(Equal(&status))
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(int64(2)))
		})

		It("sorts the filtered result", func() {
			st.listByDocumentFn = func(_ context.Context, _ string, _ store.ListFilter) ([]model.Suggestion, error) {
				return []model.Suggestion{
					{ID: 1, Confidence: 0.5},
					{ID: 2, Confidence: 0.9},
				}, nil
			}

			result, err := svc.List(ctx, service.ListParams{
				DocumentID: "doc-1",
				SortBy:     suggestion.SortByConfidence,
				SortOrder:  suggestion.SortDesc,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result[0].ID).To(Equal(int64(2)))
		})
	})

	Describe("Update", func() {
		It("passes the lifecycle change through to the store", func() {
			accepted := model.SuggestionStatusAccepted
			st.updateFn = func(_ context.Context, id int64, params store.UpdateParams) (*model.Suggestion, error) {
				Expect(id).To(Equal(int64(42)))
				Expect(params.Status).To(Equal(&accepted))
				Expect(*params.IsProcessed).To(BeTrue())
				return &model.Suggestion{ID: id, Status: accepted, IsProcessed: true}, nil
			}

			updated, err := svc.Update(ctx, 42, service.UpdateSuggestionParams{
				Status:      &accepted,
				IsProcessed: ptr(true),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(model.SuggestionStatusAccepted))
		})

		It("propagates not-found from the store", func() {
			rejected := model.SuggestionStatusRejected
			_, err := svc.Update(ctx, 7, service.UpdateSuggestionParams{Status: &rejected})

			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
