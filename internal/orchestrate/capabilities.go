package orchestrate

import (
	"context"
	"time"

	"github.com/minhph/orderflow/internal/core/domain"
	"github.com/minhph/orderflow/internal/core/effect"
	"github.com/minhph/orderflow/internal/infra/storage"
)

// Cache stores processed-order results for fast reads
type Cache interface {
	// Set writes value under key with the given TTL
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Mailer sends customer notifications
type Mailer interface {
	// SendEmail sends a plain-text email
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Alerter delivers missing-product alerts to the monitoring channel
type Alerter interface {
	// SendAlerts delivers a batch of alerts
	SendAlerts(ctx context.Context, alerts []domain.MissingProductAlert) error
}

// Analytics records telemetry events
type Analytics interface {
	// TrackEvent records one event
	TrackEvent(ctx context.Context, event domain.AnalyticsEvent) error
}

// Capabilities aggregates every collaborator the orchestrator consumes.
// Constructed once per process and passed by reference.
type Capabilities struct {
	Orders    storage.OrderRepository
	Customers storage.CustomerRepository
	Products  storage.ProductRepository
	Pricing   storage.DiscountRuleRepository
	Cache     Cache
	Mail      Mailer
	Alerts    Alerter
	Analytics Analytics
}

// Sink observes the terminal outcome of every applied effect. Optional
// effects report only here; without a sink their failures would vanish.
type Sink interface {
	Observe(outcome effect.Outcome)
}
