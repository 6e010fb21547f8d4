package analytics

import (
	"context"
	"log/slog"

	"github.com/minhph/orderflow/internal/core/domain"
	"github.com/minhph/orderflow/internal/observe/metrics"
)

// Tracker records analytics events to the process metrics and the log.
// Events are scraped from /metrics; there is no external analytics
// backend in this deployment.
type Tracker struct {
	log *slog.Logger
}

// NewTracker creates an analytics tracker.
func NewTracker(log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{log: log}
}

// TrackEvent records one event.
func (t *Tracker) TrackEvent(ctx context.Context, event domain.AnalyticsEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	metrics.AnalyticsEvents.WithLabelValues(event.Name, string(event.Tier)).Inc()
	t.log.Info("analytics event",
		"event_id", event.ID,
		"event", event.Name,
		"order_id", event.OrderID,
		"total", event.Total,
		"tier", event.Tier)
	return nil
}
