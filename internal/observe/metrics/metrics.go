package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersProcessed tracks completed processing operations by result
	OrdersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderflow_orders_processed_total",
			Help: "Total number of order processing operations",
		},
		[]string{"result"},
	)

	// ProcessingDuration tracks end-to-end operation latency
	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orderflow_processing_duration_seconds",
			Help:    "Order processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// EffectsApplied tracks applied effects by kind and category
	EffectsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderflow_effects_applied_total",
			Help: "Total number of applied effects",
		},
		[]string{"effect", "category"},
	)

	// EffectFailures tracks effects that exhausted their retry policy
	EffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderflow_effect_failures_total",
			Help: "Total number of effects that failed after retries",
		},
		[]string{"effect", "category"},
	)

	// EffectRetries tracks extra attempts beyond the first
	EffectRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderflow_effect_retries_total",
			Help: "Total number of effect retry attempts",
		},
		[]string{"effect"},
	)

	// EffectDuration tracks per-effect latency including retries
	EffectDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orderflow_effect_duration_seconds",
			Help:    "Effect application latency in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"effect"},
	)

	// AnalyticsEvents tracks telemetry events recorded by the analytics sink
	AnalyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderflow_analytics_events_total",
			Help: "Total number of analytics events recorded",
		},
		[]string{"event", "tier"},
	)

	// DBConnectionPoolUsage tracks database pool utilization percentage
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orderflow_db_pool_usage_percent",
			Help: "Database connection pool usage percentage",
		},
	)
)
