package repository

import (
	"context"
	"log/slog"
	"time"
)

// StartExpiryJob periodically deletes analysis records whose expires_at
// passed. This stands in for a storage-native TTL mechanism; rows store the
// same epoch-seconds unit a TTL attribute would. Blocks until ctx is done,
// so run it in its own goroutine.
func (s *Store) StartExpiryJob(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	slog.Info("analysis expiry job starting", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.sweepExpired(ctx)

		select {
		case <-ctx.Done():
			slog.Info("analysis expiry job stopping")
			return
		case <-ticker.C:
		}
	}
}

func (s *Store) sweepExpired(ctx context.Context) {
	deleted, err := s.DeleteExpiredAnalyses(ctx, time.Now().Unix())
	if err != nil {
		slog.Error("analysis expiry sweep failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		slog.Info("expired analyses deleted", slog.Int64("count", deleted))
	}
}
