package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mizusaki/kaiwa/backend/internal/model/analysis"
)

// CreateAnalysisIfAbsent persists an analysis record only if none exists for
// its message id. Returns false when an earlier record won; the existing row
// is left untouched either way. The insert is atomic, so concurrent duplicate
// attempts are resolved here rather than in application code.
func (s *Store) CreateAnalysisIfAbsent(ctx context.Context, rec analysis.Record) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO sentiment_analyses
		 (message_id, sentiment, score_positive, score_negative, score_neutral, score_mixed,
		  language, language_score, is_appropriate, flags, moderation_confidence,
		  analyzed_at, analyzed_by, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (message_id) DO NOTHING`,
		rec.MessageID, string(rec.Sentiment),
		rec.Scores.Positive, rec.Scores.Negative, rec.Scores.Neutral, rec.Scores.Mixed,
		rec.Language, rec.LangScore,
		rec.Moderation.IsAppropriate, rec.Moderation.Flags, rec.Moderation.Confidence,
		rec.AnalyzedAt, rec.AnalyzedBy, rec.ExpiresAt)
	if err != nil {
		return false, fmt.Errorf("insert analysis: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetAnalysis fetches the stored record for a message id, ErrNotFound on miss.
func (s *Store) GetAnalysis(ctx context.Context, messageID string) (analysis.Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT message_id, sentiment, score_positive, score_negative, score_neutral, score_mixed,
		        language, language_score, is_appropriate, flags, moderation_confidence,
		        analyzed_at, analyzed_by, expires_at
		 FROM sentiment_analyses WHERE message_id = $1`, messageID)

	var rec analysis.Record
	var sentiment string
	err := row.Scan(&rec.MessageID, &sentiment,
		&rec.Scores.Positive, &rec.Scores.Negative, &rec.Scores.Neutral, &rec.Scores.Mixed,
		&rec.Language, &rec.LangScore,
		&rec.Moderation.IsAppropriate, &rec.Moderation.Flags, &rec.Moderation.Confidence,
		&rec.AnalyzedAt, &rec.AnalyzedBy, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis.Record{}, ErrNotFound
		}
		return analysis.Record{}, fmt.Errorf("get analysis: %w", err)
	}

	rec.Sentiment = analysis.Sentiment(sentiment)
	return rec, nil
}

// DeleteExpiredAnalyses removes records whose retention window passed.
func (s *Store) DeleteExpiredAnalyses(ctx context.Context, nowEpoch int64) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM sentiment_analyses WHERE expires_at <= $1`, nowEpoch)
	if err != nil {
		return 0, fmt.Errorf("delete expired analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}
