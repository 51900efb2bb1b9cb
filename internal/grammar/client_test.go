package grammar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wordwise.app/server/core/config"
	"wordwise.app/server/internal/grammar"
	"wordwise.app/server/internal/model"
)

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		server   *httptest.Server
		received url.Values
	)

	newClient := func() *grammar.Client {
		return grammar.NewClient(config.GrammarConfig{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		})
	}

	BeforeEach(func() {
		ctx = context.Background()
		received = url.Values{}
	})

	AfterEach(func() {
		if server != nil {
			server.Close()
		}
	})

	Describe("Check", func() {
		const responseBody = `{
			"language": {"code": "en-US", "detectedLanguage": {"code": "en-GB", "confidence": 0.92}},
			"matches": [
				{
					"message": "Possible spelling mistake found.",
					"offset": 4,
					"length": 3,
					"replacements": [{"value": "the"}, {"value": "ten"}],
					"rule": {
						"id": "MORFOLOGIK_RULE_EN_US",
						"description": "Possible spelling mistake",
						"issueType": "misspelling",
						"category": {"id": "TYPOS", "name": "Possible Typo"}
					}
				},
				{
					"message": "Consider a shorter alternative.",
					"offset": 8,
					"length": 10,
					"replacements": [],
					"rule": {
						"id": "WORDINESS",
						"description": "Wordiness",
						"issueType": "style",
						"category": {"id": "STYLE", "name": "Style"}
					}
				}
			]
		}`

		It("posts the form and adapts matches into raw suggestions", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/v2/check"))
				Expect(r.ParseForm()).To(Succeed())
				received = r.PostForm

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(responseBody)) //nolint:errcheck
			}))

			result, err := newClient().Check(ctx, grammar.CheckRequest{
				Text:          "Fix teh wordniness in here",
				Language:      "en-US",
				DisabledRules: []string{"EN_QUOTES", "DASH_RULE"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(received.Get("text")).To(Equal("Fix teh wordniness in here"))
			Expect(received.Get("language")).To(Equal("en-US"))
			Expect(received.Get("disabledRules")).To(Equal("EN_QUOTES,DASH_RULE"))

			Expect(result.DetectedLanguage).To(Equal("en-GB"))
			Expect(result.Suggestions).To(HaveLen(2))

			first := result.Suggestions[0]
			Expect(first.Type).To(Equal(model.SuggestionTypeSpelling))
			Expect(first.Original).To(Equal("teh"))
			Expect(first.Suggestion).To(Equal("the"))
			Expect(first.Position).To(Equal(model.Position{Start: 4, End: 7}))
			Expect(first.Severity).To(Equal(model.SeverityHigh))
			Expect(first.Confidence).NotTo(BeNil())
			Expect(*first.Confidence).To(Equal(0.9))
			Expect(first.Rule).NotTo(BeNil())
			Expect(first.Rule.ID).To(Equal("MORFOLOGIK_RULE_EN_US"))
			Expect(first.Rule.Category).To(Equal("Possible Typo"))

			second := result.Suggestions[1]
			Expect(second.Type).To(Equal(model.SuggestionTypeStyle))
			Expect(second.Original).To(Equal("wordniness"))
			// no replacement offered, so the flagged text is kept
			Expect(second.Suggestion).To(Equal("wordniness"))
			Expect(second.Severity).To(Equal(model.SeverityLow))
			Expect(*second.Confidence).To(Equal(0.6))
		})

		It("falls back to the request language code when none is detected", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"language": {"code": "de-DE"}, "matches": []}`)) //nolint:errcheck
			}))

			result, err := newClient().Check(ctx, grammar.CheckRequest{Text: "Hallo Welt", Language: "de-DE"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.DetectedLanguage).To(Equal("de-DE"))
			Expect(result.Suggestions).To(BeEmpty())
		})

		It("skips matches with offsets outside the text", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{
					"language": {"code": "en-US"},
					"matches": [
						{"message": "stale", "offset": 900, "length": 5, "rule": {"id": "X", "issueType": "grammar"}},
						{"message": "ok", "offset": 0, "length": 5, "rule": {"id": "Y", "issueType": "grammar"}}
					]
				}`)) //nolint:errcheck
			}))

			result, err := newClient().Check(ctx, grammar.CheckRequest{Text: "Short text", Language: "en-US"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Suggestions).To(HaveLen(1))
			Expect(result.Suggestions[0].Original).To(Equal("Short"))
		})

		It("returns an error on a non-200 response", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte("rate limit exceeded")) //nolint:errcheck
			}))

			_, err := newClient().Check(ctx, grammar.CheckRequest{Text: "anything", Language: "en-US"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("429"))
		})

		It("returns an error on malformed JSON", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"language": `)) //nolint:errcheck
			}))

			_, err := newClient().Check(ctx, grammar.CheckRequest{Text: "anything", Language: "en-US"})

			Expect(err).To(HaveOccurred())
		})

		It("honors context cancellation", func() {
			block := make(chan struct{})
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-block
			}))
			defer close(block)

			cancelCtx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := newClient().Check(cancelCtx, grammar.CheckRequest{Text: "anything", Language: "en-US"})

			Expect(err).To(HaveOccurred())
		})
	})
})
