// Package pricing implements the pure computation stage of order processing:
// totals, discount selection, loyalty points, and derivation of the effect
// payloads that follow from a computed result. No function here performs I/O
// or fails; absent products are data, not errors.
package pricing

import (
	"math"
	"time"

	"github.com/minhph/orderflow/internal/core/domain"
)

// Compute turns fetched inputs into a ProcessedOrder. Lines whose product id
// is absent from products are excluded from totals and reported in missing,
// in order of discovery.
func Compute(
	order *domain.Order,
	customer *domain.Customer,
	products map[string]*domain.Product,
	rules []domain.DiscountRule,
) (*domain.ProcessedOrder, []string) {
	var lines []domain.LineSummary
	var missing []string
	var subtotal float64

	for _, item := range order.Items {
		product, ok := products[item.ProductID]
		if !ok {
			missing = append(missing, item.ProductID)
			continue
		}
		lineTotal := float64(item.Quantity) * item.UnitPrice
		lines = append(lines, domain.LineSummary{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
		subtotal += lineTotal
	}

	discount := applyDiscount(customer.Tier, subtotal, rules)
	total := subtotal - discount

	return &domain.ProcessedOrder{
		OrderID:       order.ID,
		CustomerID:    customer.ID,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		LoyaltyPoints: loyaltyPoints(total, customer.Tier),
		Lines:         lines,
		ProcessedAt:   time.Now().UTC(),
	}, missing
}

// applyDiscount selects the first rule matching the customer's tier whose
// threshold is at or below the subtotal. Rule order is the pricing store's;
// there is no numeric tie-break.
func applyDiscount(tier domain.Tier, subtotal float64, rules []domain.DiscountRule) float64 {
	for _, rule := range rules {
		if rule.Applies(tier, subtotal) {
			return subtotal * rule.Percent / 100
		}
	}
	return 0
}

// loyaltyPoints awards floor(total/10) base points, scaled by tier.
func loyaltyPoints(total float64, tier domain.Tier) int {
	base := int(math.Floor(total / 10))
	switch tier {
	case domain.TierPremium:
		return int(math.Floor(float64(base) * 1.5))
	case domain.TierVIP:
		return base * 2
	default:
		return base
	}
}
