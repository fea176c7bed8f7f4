package analysis

import "time"

// Sentiment 表示分类服务返回的情感标签。
type Sentiment string

const (
	Positive Sentiment = "POSITIVE"
	Negative Sentiment = "NEGATIVE"
	Neutral  Sentiment = "NEUTRAL"
	Mixed    Sentiment = "MIXED"
)

// Valid reports whether s is one of the four known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Negative, Neutral, Mixed:
		return true
	}
	return false
}

// Scores carries per-label confidence. The values sum to at most 1.0.
type Scores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
}

// Moderation is the keyword scanner verdict for a message text.
type Moderation struct {
	IsAppropriate bool     `json:"isAppropriate"`
	Flags         []string `json:"flags"`
	Confidence    float64  `json:"confidence"`
}

// Record is the durable analysis row keyed by message id. It is created at
// most once per message and never updated; ExpiresAt is epoch seconds after
// which the expiry job may delete it.
type Record struct {
	MessageID  string
	Sentiment  Sentiment
	Scores     Scores
	Language   string
	LangScore  float64
	Moderation Moderation
	AnalyzedAt time.Time
	AnalyzedBy string
	ExpiresAt  int64
}

// Result is the caller-facing DTO for one enrichment run. Under concurrent
// duplicate requests it reflects the analysis this run computed, which is not
// necessarily the record that won the conditional write.
type Result struct {
	MessageID          string    `json:"messageId"`
	Sentiment          Sentiment `json:"sentiment"`
	SentimentScore     Scores    `json:"sentimentScore"`
	Language           string    `json:"language"`
	LanguageConfidence float64   `json:"languageConfidence"`
	IsAppropriate      bool      `json:"isAppropriate"`
	ModerationFlags    []string  `json:"moderationFlags"`
	AnalyzedAt         time.Time `json:"analyzedAt"`
}
