package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/minhph/orderflow/internal/core/domain"
)

// StockDeltas derives the inventory adjustment for each matched line: one
// negative delta per line, in line order.
func StockDeltas(result *domain.ProcessedOrder) []domain.StockDelta {
	deltas := make([]domain.StockDelta, 0, len(result.Lines))
	for _, line := range result.Lines {
		deltas = append(deltas, domain.StockDelta{
			ProductID: line.ProductID,
			Delta:     -line.Quantity,
		})
	}
	return deltas
}

// CacheKey returns the cache key under which a processed order is stored.
func CacheKey(orderID string) string {
	return fmt.Sprintf("order:%s", orderID)
}

// ConfirmationEmail builds the subject and body of the order confirmation.
func ConfirmationEmail(result *domain.ProcessedOrder) (subject, body string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", result.OrderID)
	for _, line := range result.Lines {
		fmt.Fprintf(&b, "  %s x%d @ %.2f = %.2f\n",
			line.Name, line.Quantity, line.UnitPrice, line.LineTotal)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", result.Subtotal)
	if result.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -%.2f\n", result.Discount)
	}
	fmt.Fprintf(&b, "Total: %.2f\n", result.Total)
	fmt.Fprintf(&b, "Loyalty points earned: %d\n", result.LoyaltyPoints)

	return fmt.Sprintf("Order %s confirmed", result.OrderID), b.String()
}

// MissingProductAlerts builds one alert per product id absent at fetch time.
func MissingProductAlerts(orderID string, missing []string, at time.Time) []domain.MissingProductAlert {
	alerts := make([]domain.MissingProductAlert, 0, len(missing))
	for _, productID := range missing {
		alerts = append(alerts, domain.MissingProductAlert{
			OrderID:   orderID,
			ProductID: productID,
			At:        at,
		})
	}
	return alerts
}

// ProcessedEvent builds the analytics event for a completed order.
func ProcessedEvent(id string, result *domain.ProcessedOrder, tier domain.Tier) domain.AnalyticsEvent {
	return domain.AnalyticsEvent{
		ID:      id,
		Name:    "order_processed",
		OrderID: result.OrderID,
		Total:   result.Total,
		Tier:    tier,
		At:      result.ProcessedAt,
	}
}
