package domain

import "time"

// AnalyticsEvent is a telemetry record emitted after order processing
type AnalyticsEvent struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	OrderID string    `json:"order_id"`
	Total   float64   `json:"total"`
	Tier    Tier      `json:"tier"`
	At      time.Time `json:"at"`
}

// MissingProductAlert reports an ordered product absent from the catalog
type MissingProductAlert struct {
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	At        time.Time `json:"at"`
}
