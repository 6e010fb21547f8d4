package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minhph/orderflow/internal/core/domain"
)

// CustomerRepo implements storage.CustomerRepository using PostgreSQL.
type CustomerRepo struct {
	db *DB
}

// NewCustomerRepo creates a new PostgreSQL customer repository.
func NewCustomerRepo(db *DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// GetByID retrieves a customer. Returns (nil, nil) when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer,
		`SELECT id, email, tier, total_purchases FROM customers WHERE id = $1`, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// UpdateTotalPurchases adds amount to the customer's cumulative total.
func (r *CustomerRepo) UpdateTotalPurchases(ctx context.Context, customerID string, amount float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET total_purchases = total_purchases + $2 WHERE id = $1`,
		customerID, amount)
	if err != nil {
		return fmt.Errorf("failed to update total purchases: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}
