// Package classify wraps the external NLP classification capability behind a
// small client interface, plus the language-fallback policy the rest of the
// service relies on.
package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

// Language hints submitted with sentiment calls. The primary hint matches the
// primary language of the user base; the fallback is used for exactly one
// retry when the backend rejects the primary.
const (
	PrimaryLanguage  = "ja"
	FallbackLanguage = "en"
)

// MaxTextLen is the backend's per-call text limit in runes. Longer text is
// clipped before submission, never rejected.
const MaxTextLen = 5000

// SentimentResult is one sentiment classification outcome.
type SentimentResult struct {
	Sentiment analysis.Sentiment
	Scores    analysis.Scores
}

// LanguageResult is one dominant-language detection outcome.
type LanguageResult struct {
	Language   string
	Confidence float64
}

// Client is the boundary to the classification backend. Implementations map
// backend-specific failures into the tagged errors below; anything else is
// returned unmodified.
type Client interface {
	ClassifySentiment(ctx context.Context, text, languageHint string) (SentimentResult, error)
	DetectLanguage(ctx context.Context, text string) (LanguageResult, error)
}

// UnsupportedLanguageError reports that the backend rejected the submitted
// language hint. It stays internal to this package's retry policy and is
// never surfaced to callers.
type UnsupportedLanguageError struct {
	Hint string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q not supported by classifier", e.Hint)
}

// IsUnsupportedLanguage reports whether err is the unsupported-language
// condition, at any depth of wrapping.
func IsUnsupportedLanguage(err error) bool {
	var target *UnsupportedLanguageError
	return errors.As(err, &target)
}
