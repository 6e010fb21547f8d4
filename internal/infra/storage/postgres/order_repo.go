package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minhph/orderflow/internal/core/domain"
)

// OrderRepo implements storage.OrderRepository using PostgreSQL.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo creates a new PostgreSQL order repository.
func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetByID retrieves an order and its line items. Returns (nil, nil) when
// the order does not exist.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order,
		`SELECT id, customer_id, created_at FROM orders WHERE id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	err = r.db.SelectContext(ctx, &order.Items,
		`SELECT product_id, quantity, unit_price
		 FROM order_items WHERE order_id = $1 ORDER BY line_no`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return &order, nil
}
