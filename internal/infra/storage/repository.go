package storage

import (
	"context"

	"github.com/minhph/orderflow/internal/core/domain"
)

// Reads return (nil, nil) when the entity does not exist: absence is data,
// not an error, and callers decide whether it is terminal.

// OrderRepository handles order reads
type OrderRepository interface {
	// GetByID retrieves an order by id
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// CustomerRepository handles customer reads and the purchase ledger
type CustomerRepository interface {
	// GetByID retrieves a customer by id
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// UpdateTotalPurchases adds amount to the customer's cumulative total
	UpdateTotalPurchases(ctx context.Context, customerID string, amount float64) error
}

// ProductRepository handles catalog reads and inventory writes
type ProductRepository interface {
	// GetByIDs retrieves products by id; absent ids are simply missing
	// from the returned map
	GetByIDs(ctx context.Context, productIDs []string) (map[string]*domain.Product, error)

	// UpdateInventory applies stock deltas
	UpdateInventory(ctx context.Context, deltas []domain.StockDelta) error
}

// DiscountRuleRepository handles pricing rule reads
type DiscountRuleRepository interface {
	// GetDiscountRules returns all rules in evaluation order
	GetDiscountRules(ctx context.Context) ([]domain.DiscountRule, error)
}
