package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/mizusaki/kaiwa/backend/internal/telemetry"
)

// Adapter applies the service-wide submission policy on top of a Client:
// text clipping and the single language-fallback retry.
type Adapter struct {
	client Client
}

// NewAdapter wraps the given backend client.
func NewAdapter(client Client) *Adapter {
	return &Adapter{client: client}
}

// ClassifySentiment submits text with the primary language hint. If the
// backend rejects the hint as unsupported it retries exactly once with the
// fallback hint; a second rejection, or any other failure, propagates
// unmodified.
func (a *Adapter) ClassifySentiment(ctx context.Context, text string) (SentimentResult, error) {
	text = clip(text)

	result, err := a.client.ClassifySentiment(ctx, text, PrimaryLanguage)
	if err == nil {
		return validateSentiment(result)
	}
	if !IsUnsupportedLanguage(err) {
		return SentimentResult{}, err
	}

	telemetry.Inc(telemetry.LanguageRetries)
	result, err = a.client.ClassifySentiment(ctx, text, FallbackLanguage)
	if err != nil {
		return SentimentResult{}, err
	}
	return validateSentiment(result)
}

// DetectLanguage submits text for dominant-language detection.
func (a *Adapter) DetectLanguage(ctx context.Context, text string) (LanguageResult, error) {
	result, err := a.client.DetectLanguage(ctx, clip(text))
	if err != nil {
		return LanguageResult{}, err
	}
	if strings.TrimSpace(result.Language) == "" {
		return LanguageResult{}, fmt.Errorf("classifier returned empty language code")
	}
	return result, nil
}

// validateSentiment rejects loosely-shaped backend replies at the boundary so
// downstream code never inspects an incomplete result.
func validateSentiment(result SentimentResult) (SentimentResult, error) {
	if !result.Sentiment.Valid() {
		return SentimentResult{}, fmt.Errorf("classifier returned unknown sentiment label %q", result.Sentiment)
	}
	return result, nil
}

func clip(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTextLen {
		return text
	}
	return string(runes[:MaxTextLen])
}
