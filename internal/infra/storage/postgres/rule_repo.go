package postgres

import (
	"context"
	"fmt"

	"github.com/minhph/orderflow/internal/core/domain"
)

// RuleRepo implements storage.DiscountRuleRepository using PostgreSQL.
type RuleRepo struct {
	db *DB
}

// NewRuleRepo creates a new PostgreSQL discount rule repository.
func NewRuleRepo(db *DB) *RuleRepo {
	return &RuleRepo{db: db}
}

// GetDiscountRules returns all rules ordered by their configured position.
// Evaluation order is part of the pricing contract: the computation stage
// applies the first matching rule.
func (r *RuleRepo) GetDiscountRules(ctx context.Context) ([]domain.DiscountRule, error) {
	var rules []domain.DiscountRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT tier, min_purchase, percent FROM discount_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to get discount rules: %w", err)
	}
	return rules, nil
}
