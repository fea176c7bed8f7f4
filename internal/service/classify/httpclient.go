package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

// errorCodeUnsupportedLanguage is the wire code the NLP service uses when a
// language hint is rejected.
const errorCodeUnsupportedLanguage = "UnsupportedLanguageException"

// HTTPClient talks to a Comprehend-style NLP service over JSON.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the NLP service at baseURL.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sentimentRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type sentimentResponse struct {
	Sentiment string `json:"sentiment"`
	Score     struct {
		Positive float64 `json:"positive"`
		Negative float64 `json:"negative"`
		Neutral  float64 `json:"neutral"`
		Mixed    float64 `json:"mixed"`
	} `json:"score"`
}

type languageRequest struct {
	Text string `json:"text"`
}

type languageResponse struct {
	Languages []struct {
		LanguageCode string  `json:"languageCode"`
		Score        float64 `json:"score"`
	} `json:"languages"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClassifySentiment calls the sentiment endpoint with the given hint.
func (c *HTTPClient) ClassifySentiment(ctx context.Context, text, languageHint string) (SentimentResult, error) {
	var resp sentimentResponse
	err := c.post(ctx, "/v1/sentiment", sentimentRequest{Text: text, LanguageCode: languageHint}, &resp)
	if err != nil {
		return SentimentResult{}, err
	}

	return SentimentResult{
		Sentiment: analysis.Sentiment(resp.Sentiment),
		Scores: analysis.Scores{
			Positive: resp.Score.Positive,
			Negative: resp.Score.Negative,
			Neutral:  resp.Score.Neutral,
			Mixed:    resp.Score.Mixed,
		},
	}, nil
}

// DetectLanguage calls the dominant-language endpoint and returns the
// top-ranked language.
func (c *HTTPClient) DetectLanguage(ctx context.Context, text string) (LanguageResult, error) {
	var resp languageResponse
	if err := c.post(ctx, "/v1/language", languageRequest{Text: text}, &resp); err != nil {
		return LanguageResult{}, err
	}
	if len(resp.Languages) == 0 {
		return LanguageResult{}, fmt.Errorf("language detection returned no candidates")
	}

	top := resp.Languages[0]
	return LanguageResult{Language: top.LanguageCode, Confidence: top.Score}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call nlp service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Code == errorCodeUnsupportedLanguage {
			return &UnsupportedLanguageError{Hint: hintFrom(payload)}
		}
		if apiErr.Message != "" {
			return fmt.Errorf("nlp service %s: %s (status %d)", path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("nlp service %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func hintFrom(payload any) string {
	if req, ok := payload.(sentimentRequest); ok {
		return req.LanguageCode
	}
	return ""
}
