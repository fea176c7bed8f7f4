package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

type scriptedClient struct {
	calls      []string
	texts      []string
	results    []SentimentResult
	errs       []error
	langResult LanguageResult
	langErr    error
}

func (c *scriptedClient) ClassifySentiment(_ context.Context, text, hint string) (SentimentResult, error) {
	i := len(c.calls)
	c.calls = append(c.calls, hint)
	c.texts = append(c.texts, text)
	if i < len(c.errs) && c.errs[i] != nil {
		return SentimentResult{}, c.errs[i]
	}
	if i < len(c.results) {
		return c.results[i], nil
	}
	return SentimentResult{Sentiment: analysis.Neutral}, nil
}

func (c *scriptedClient) DetectLanguage(_ context.Context, _ string) (LanguageResult, error) {
	return c.langResult, c.langErr
}

func TestClassifySentimentPrimaryHint(t *testing.T) {
	client := &scriptedClient{results: []SentimentResult{{Sentiment: analysis.Positive}}}
	adapter := NewAdapter(client)

	result, err := adapter.ClassifySentiment(context.Background(), "楽しい一日でした")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != analysis.Positive {
		t.Fatalf("expected POSITIVE, got %s", result.Sentiment)
	}
	if len(client.calls) != 1 || client.calls[0] != PrimaryLanguage {
		t.Fatalf("expected single call with primary hint, got %v", client.calls)
	}
}

func TestClassifySentimentRetriesOnceOnUnsupportedLanguage(t *testing.T) {
	client := &scriptedClient{
		errs:    []error{&UnsupportedLanguageError{Hint: PrimaryLanguage}, nil},
		results: []SentimentResult{{}, {Sentiment: analysis.Negative}},
	}
	adapter := NewAdapter(client)

	result, err := adapter.ClassifySentiment(context.Background(), "awful experience")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != analysis.Negative {
		t.Fatalf("expected NEGATIVE, got %s", result.Sentiment)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", len(client.calls))
	}
	if client.calls[0] != PrimaryLanguage || client.calls[1] != FallbackLanguage {
		t.Fatalf("expected hints [ja en], got %v", client.calls)
	}
}

func TestClassifySentimentNoSecondRetry(t *testing.T) {
	second := &UnsupportedLanguageError{Hint: FallbackLanguage}
	client := &scriptedClient{
		errs: []error{&UnsupportedLanguageError{Hint: PrimaryLanguage}, second},
	}
	adapter := NewAdapter(client)

	_, err := adapter.ClassifySentiment(context.Background(), "text")
	if !errors.Is(err, second) && !IsUnsupportedLanguage(err) {
		t.Fatalf("expected the second failure to propagate, got %v", err)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", len(client.calls))
	}
}

func TestClassifySentimentOtherErrorNotRetried(t *testing.T) {
	boom := errors.New("backend down")
	client := &scriptedClient{errs: []error{boom}}
	adapter := NewAdapter(client)

	_, err := adapter.ClassifySentiment(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected no retry for non-language errors, got %d calls", len(client.calls))
	}
}

func TestClassifySentimentClipsLongText(t *testing.T) {
	client := &scriptedClient{results: []SentimentResult{{Sentiment: analysis.Neutral}}}
	adapter := NewAdapter(client)

	long := strings.Repeat("あ", MaxTextLen+500)
	if _, err := adapter.ClassifySentiment(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(client.texts[0])); got != MaxTextLen {
		t.Fatalf("expected text clipped to %d runes, got %d", MaxTextLen, got)
	}
}

func TestClassifySentimentRejectsUnknownLabel(t *testing.T) {
	client := &scriptedClient{results: []SentimentResult{{Sentiment: "SARCASTIC"}}}
	adapter := NewAdapter(client)

	if _, err := adapter.ClassifySentiment(context.Background(), "text"); err == nil {
		t.Fatal("expected error for unknown sentiment label")
	}
}

func TestDetectLanguageRejectsEmptyCode(t *testing.T) {
	client := &scriptedClient{langResult: LanguageResult{Language: "  "}}
	adapter := NewAdapter(client)

	if _, err := adapter.DetectLanguage(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty language code")
	}
}
