package orchestrate

import (
	"log/slog"

	"github.com/minhph/orderflow/internal/core/effect"
	"github.com/minhph/orderflow/internal/observe/metrics"
)

// NopSink discards outcomes. Default when no sink is configured.
type NopSink struct{}

func (NopSink) Observe(effect.Outcome) {}

// ObserveSink records effect outcomes to the process metrics and logs
// failures. The standard sink for the running service.
type ObserveSink struct {
	Log *slog.Logger
}

func (s ObserveSink) Observe(out effect.Outcome) {
	category := string(effect.Classify(out.Kind))
	metrics.EffectsApplied.WithLabelValues(string(out.Kind), category).Inc()
	metrics.EffectDuration.WithLabelValues(string(out.Kind)).Observe(out.Duration.Seconds())
	if out.Attempts > 1 {
		metrics.EffectRetries.WithLabelValues(string(out.Kind)).Add(float64(out.Attempts - 1))
	}
	if out.Failed() {
		metrics.EffectFailures.WithLabelValues(string(out.Kind), category).Inc()
		if s.Log != nil {
			s.Log.Error("effect failed",
				"effect", out.Kind,
				"category", category,
				"attempts", out.Attempts,
				"error", out.Err)
		}
	}
}
