package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

func TestHTTPClientClassifySentiment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sentiment" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req sentimentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.LanguageCode != "ja" {
			t.Fatalf("expected hint ja, got %s", req.LanguageCode)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"sentiment": "POSITIVE",
			"score":     map[string]float64{"positive": 0.9, "negative": 0.02, "neutral": 0.07, "mixed": 0.01},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", 0)
	result, err := client.ClassifySentiment(context.Background(), "素晴らしい", "ja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != analysis.Positive {
		t.Fatalf("expected POSITIVE, got %s", result.Sentiment)
	}
	if result.Scores.Positive != 0.9 {
		t.Fatalf("expected positive score 0.9, got %f", result.Scores.Positive)
	}
}

func TestHTTPClientMapsUnsupportedLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "UnsupportedLanguageException",
			"message": "ja is not supported",
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 0)
	_, err := client.ClassifySentiment(context.Background(), "text", "ja")
	if !IsUnsupportedLanguage(err) {
		t.Fatalf("expected unsupported-language error, got %v", err)
	}
}

func TestHTTPClientOtherErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"code": "InternalError", "message": "boom"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 0)
	_, err := client.ClassifySentiment(context.Background(), "text", "ja")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsUnsupportedLanguage(err) {
		t.Fatal("server error must not map to the language condition")
	}
}

func TestHTTPClientDetectLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/language" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"languages": []map[string]any{
				{"languageCode": "ja", "score": 0.97},
				{"languageCode": "en", "score": 0.03},
			},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 0)
	result, err := client.DetectLanguage(context.Background(), "こんにちは")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Language != "ja" || result.Confidence != 0.97 {
		t.Fatalf("expected ja/0.97, got %s/%f", result.Language, result.Confidence)
	}
}

func TestHTTPClientDetectLanguageEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"languages": []any{}})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "", 0)
	if _, err := client.DetectLanguage(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
