package effect

import "time"

// Kind identifies one write-side effect of order processing
type Kind string

const (
	KindUpdateInventory      Kind = "update_inventory"
	KindUpdateTotalPurchases Kind = "update_total_purchases"
	KindCacheResult          Kind = "cache_result"
	KindSendEmail            Kind = "send_email"
	KindSendAlerts           Kind = "send_alerts"
	KindTrackEvent           Kind = "track_event"
)

// Category determines whether an effect's failure fails the whole operation
type Category string

const (
	// Critical effects must succeed for the operation to succeed.
	Critical Category = "critical"
	// Optional effects are best-effort; failures go to the observability
	// sink and never change the reported outcome.
	Optional Category = "optional"
)

// Group selects the retry policy applied to an effect
type Group string

const (
	GroupStore       Group = "store"
	GroupExternalAPI Group = "external_api"
	GroupCache       Group = "cache"
	GroupDefault     Group = "default"
)

// Outcome records the terminal result of one applied effect
type Outcome struct {
	Kind     Kind
	Err      error // nil on success
	Attempts int
	Duration time.Duration
}

// Failed reports whether the effect ultimately failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
