// Package analysis implements the message enrichment pipeline: sentiment
// classification, language detection, and moderation scanning fanned out
// concurrently, merged into one record, and persisted exactly once.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mizusaki/kaiwa/backend/internal/analysis/moderation"
	"github.com/mizusaki/kaiwa/backend/internal/audit"
	model "github.com/mizusaki/kaiwa/backend/internal/model/analysis"
	"github.com/mizusaki/kaiwa/backend/internal/service/classify"
	"github.com/mizusaki/kaiwa/backend/internal/telemetry"
)

// retention is how long an analysis record is kept before the expiry job may
// delete it.
const retention = 90 * 24 * time.Hour

// Classifier is the classification boundary the orchestrator fans out to.
// Satisfied by *classify.Adapter.
type Classifier interface {
	ClassifySentiment(ctx context.Context, text string) (classify.SentimentResult, error)
	DetectLanguage(ctx context.Context, text string) (classify.LanguageResult, error)
}

// RecordStore is the atomic create-if-absent persistence port.
type RecordStore interface {
	CreateAnalysisIfAbsent(ctx context.Context, rec model.Record) (bool, error)
}

// Input is one enrichment request. All fields are required.
type Input struct {
	MessageID string
	Text      string
	User      string
}

// Config controls orchestrator behavior.
type Config struct {
	// BlockList overrides the default moderation terms when non-empty.
	BlockList []string
}

// Service orchestrates one enrichment run per call. Stateless; safe for
// concurrent use.
type Service struct {
	classifier Classifier
	store      RecordStore
	scan       func(text string) model.Moderation
	sink       audit.Logger
	now        func() time.Time
}

// NewService wires the orchestrator. sink may be nil to disable auditing.
func NewService(classifier Classifier, store RecordStore, sink audit.Logger, cfg Config) *Service {
	scan := moderation.Scan
	if len(cfg.BlockList) > 0 {
		terms := cfg.BlockList
		scan = func(text string) model.Moderation {
			return moderation.ScanWith(terms, text)
		}
	}

	return &Service{
		classifier: classifier,
		store:      store,
		scan:       scan,
		sink:       sink,
		now:        time.Now,
	}
}

// Analyze validates the input, runs sentiment classification, language
// detection, and the moderation scan concurrently, persists the merged record
// with a create-if-absent write, and returns the DTO for the attempted
// analysis.
//
// If the conditional write finds an existing record the existing analysis
// stands and this call still succeeds, returning the result it just computed.
// Concurrent racers may therefore each observe their own "first" result even
// though only one was durably kept; that divergence is accepted behavior.
func (s *Service) Analyze(ctx context.Context, in Input) (model.Result, error) {
	if in.MessageID == "" {
		return model.Result{}, validationError("messageId required")
	}
	if in.Text == "" {
		return model.Result{}, validationError("text required")
	}
	if in.User == "" {
		return model.Result{}, validationError("authentication required")
	}

	telemetry.Inc(telemetry.AnalysesAttempted)

	var (
		sentiment classify.SentimentResult
		language  classify.LanguageResult
		verdict   model.Moderation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sentiment, err = s.classifier.ClassifySentiment(gctx, in.Text)
		return err
	})
	g.Go(func() error {
		var err error
		language, err = s.classifier.DetectLanguage(gctx, in.Text)
		return err
	})
	g.Go(func() error {
		verdict = s.scan(in.Text)
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Result{}, s.fail(ctx, in, err)
	}

	analyzedAt := s.now().UTC()
	record := model.Record{
		MessageID:  in.MessageID,
		Sentiment:  sentiment.Sentiment,
		Scores:     sentiment.Scores,
		Language:   language.Language,
		LangScore:  language.Confidence,
		Moderation: verdict,
		AnalyzedAt: analyzedAt,
		AnalyzedBy: in.User,
		ExpiresAt:  analyzedAt.Add(retention).Unix(),
	}

	created, err := s.store.CreateAnalysisIfAbsent(ctx, record)
	if err != nil {
		return model.Result{}, s.fail(ctx, in, err)
	}
	if created {
		telemetry.Inc(telemetry.AnalysesPersisted)
	} else {
		telemetry.Inc(telemetry.AnalysesConflicts)
		slog.Info("analysis record already exists", slog.String("messageId", in.MessageID))
	}
	if !verdict.IsAppropriate {
		telemetry.Inc(telemetry.ModerationFlagged)
	}

	return model.Result{
		MessageID:          in.MessageID,
		Sentiment:          record.Sentiment,
		SentimentScore:     record.Scores,
		Language:           record.Language,
		LanguageConfidence: record.LangScore,
		IsAppropriate:      verdict.IsAppropriate,
		ModerationFlags:    verdict.Flags,
		AnalyzedAt:         analyzedAt,
	}, nil
}

// fail audit-logs the root cause best-effort and wraps it for the caller.
func (s *Service) fail(ctx context.Context, in Input, err error) error {
	telemetry.Inc(telemetry.AnalysesFailed)
	audit.Record(ctx, s.sink, audit.Entry{
		Operation: "analyzeMessageSentiment",
		MessageID: in.MessageID,
		User:      in.User,
		Err:       err,
	})
	return &FailedError{Cause: err}
}
