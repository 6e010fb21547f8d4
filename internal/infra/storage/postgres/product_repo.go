package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/minhph/orderflow/internal/core/domain"
)

// ProductRepo implements storage.ProductRepository using PostgreSQL.
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new PostgreSQL product repository.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// GetByIDs retrieves products by id. Absent ids are simply missing from
// the returned map.
func (r *ProductRepo) GetByIDs(ctx context.Context, productIDs []string) (map[string]*domain.Product, error) {
	products := make(map[string]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, name, stock, category FROM products WHERE id IN (?)`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	var rows []domain.Product
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	for i := range rows {
		products[rows[i].ID] = &rows[i]
	}
	return products, nil
}

// UpdateInventory applies stock deltas in a single transaction.
func (r *ProductRepo) UpdateInventory(ctx context.Context, deltas []domain.StockDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range deltas {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock + $2 WHERE id = $1`,
			d.ProductID, d.Delta); err != nil {
			return fmt.Errorf("failed to update stock for %s: %w", d.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory update: %w", err)
	}
	return nil
}
