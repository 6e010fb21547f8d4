package domain

// Product represents a catalog entry
type Product struct {
	ID       string `db:"id"       json:"id"`
	Name     string `db:"name"     json:"name"`
	Stock    int    `db:"stock"    json:"stock"`
	Category string `db:"category" json:"category"`
}

// StockDelta is an inventory adjustment for a single product.
// Processing an order produces a negative delta per matched line.
type StockDelta struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}
