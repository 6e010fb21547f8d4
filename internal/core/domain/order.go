package domain

import "time"

// Order represents a customer order awaiting processing
type Order struct {
	ID         string    `db:"id"         json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Item is a single line request within an order
type Item struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity"   json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// ProductIDs returns the product ids referenced by the order, in line order.
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
