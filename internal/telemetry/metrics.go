// Package telemetry registers the service's Prometheus metrics.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	AnalysesAttempted prometheus.Counter
	AnalysesPersisted prometheus.Counter
	AnalysesConflicts prometheus.Counter
	AnalysesFailed    prometheus.Counter
	ModerationFlagged prometheus.Counter
	LanguageRetries   prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		AnalysesAttempted = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_analyses_attempted_total", Help: "Number of enrichment attempts started"})
		AnalysesPersisted = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_analyses_persisted_total", Help: "Number of analysis records created"})
		AnalysesConflicts = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_analyses_conflicts_total", Help: "Number of conditional writes that lost to an existing record"})
		AnalysesFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_analyses_failed_total", Help: "Number of enrichment attempts that failed"})
		ModerationFlagged = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_moderation_flagged_total", Help: "Number of messages flagged by the moderation scanner"})
		LanguageRetries = promauto.NewCounter(prometheus.CounterOpts{Name: "kaiwa_classifier_language_retries_total", Help: "Number of sentiment calls retried with the fallback language"})
	})
}

// Inc increments c if metrics were initialized.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
