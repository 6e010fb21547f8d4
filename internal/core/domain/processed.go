package domain

import "time"

// LineSummary is the computed quantity/price/total for one matched order line
type LineSummary struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// ProcessedOrder is the result of the computation stage.
// Invariants: Total == Subtotal - Discount, 0 <= Discount <= Subtotal.
type ProcessedOrder struct {
	OrderID       string        `json:"order_id"`
	CustomerID    string        `json:"customer_id"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	LoyaltyPoints int           `json:"loyalty_points"`
	Lines         []LineSummary `json:"lines"`
	ProcessedAt   time.Time     `json:"processed_at"`
}
