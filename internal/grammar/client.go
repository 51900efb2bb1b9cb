// Package grammar calls a LanguageTool-compatible grammar checking API and
// adapts its matches into the producer-agnostic raw suggestion form.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"wordwise.app/server/common/logger"
	"wordwise.app/server/core/config"
	"wordwise.app/server/internal/model"
)

// Checker is the grammar source contract consumed by the service layer.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResult, error)
}

type CheckRequest struct {
	Text     string
	Language string
	// DisabledRules are forwarded to the API so disabled rules never even
	// reach the processor's filter.
	DisabledRules []string
}

type CheckResult struct {
	Suggestions      []model.RawSuggestion
	DetectedLanguage string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.GrammarConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Check posts the text to the grammar API and adapts every match into a
// RawSuggestion. Upstream failure is returned as an error; the caller decides
// whether to surface or mask it.
func (c *Client) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	sc := logger.StartSpan(ctx, "wordwise.grammar.check", trace.WithSpanKind(trace.SpanKindClient))
	defer sc.End()
	ctx = sc.Context()

	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("language", req.Language)
	if len(req.DisabledRules) > 0 {
		form.Set("disabledRules", strings.Join(req.DisabledRules, ","))
	}
	if c.apiKey != "" {
		form.Set("apiKey", c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating grammar request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("calling grammar api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading grammar response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("grammar api returned status %d: %s", resp.StatusCode, logger.Truncate(string(body), 200))
		sc.RecordError(err)
		return nil, err
	}

	var checkResp checkResponse
	if err := json.Unmarshal(body, &checkResp); err != nil {
		return nil, fmt.Errorf("unmarshaling grammar response: %w", err)
	}

	result := &CheckResult{
		Suggestions:      adaptMatches(req.Text, checkResp.Matches),
		DetectedLanguage: checkResp.Language.Code,
	}
	if checkResp.Language.DetectedLanguage.Code != "" {
		result.DetectedLanguage = checkResp.Language.DetectedLanguage.Code
	}

	slog.DebugContext(ctx, "grammar check completed",
		"matches", len(checkResp.Matches),
		"detected_language", result.DetectedLanguage,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

type checkResponse struct {
	Language struct {
		Code             string `json:"code"`
		DetectedLanguage struct {
			Code       string  `json:"code"`
			Confidence float64 `json:"confidence"`
		} `json:"detectedLanguage"`
	} `json:"language"`
	Matches []match `json:"matches"`
}

type match struct {
	Message      string `json:"message"`
	ShortMessage string `json:"shortMessage"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		IssueType   string `json:"issueType"`
		Category    struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
}
