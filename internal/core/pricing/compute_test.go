package pricing

import (
	"strings"
	"testing"
	"time"

	"github.com/minhph/orderflow/internal/core/domain"
)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:         "order-123",
		CustomerID: "cust-456",
		Items: []domain.Item{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: 25},
			{ProductID: "prod-2", Quantity: 1, UnitPrice: 50},
		},
	}
}

func testProducts() map[string]*domain.Product {
	return map[string]*domain.Product{
		"prod-1": {ID: "prod-1", Name: "Keyboard", Stock: 100},
		"prod-2": {ID: "prod-2", Name: "Mouse", Stock: 200},
	}
}

func TestCompute_PremiumDiscount(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierPremium}
	rules := []domain.DiscountRule{
		{Tier: domain.TierPremium, MinPurchase: 50, Percent: 10},
	}

	result, missing := Compute(testOrder(), customer, testProducts(), rules)

	if len(missing) != 0 {
		t.Fatalf("expected no missing products, got %v", missing)
	}
	if result.Subtotal != 100 {
		t.Errorf("expected subtotal 100, got %v", result.Subtotal)
	}
	if result.Discount != 10 {
		t.Errorf("expected discount 10, got %v", result.Discount)
	}
	if result.Total != 90 {
		t.Errorf("expected total 90, got %v", result.Total)
	}
	// floor(90/10 * 1.5) = 13
	if result.LoyaltyPoints != 13 {
		t.Errorf("expected 13 loyalty points, got %d", result.LoyaltyPoints)
	}
	if len(result.Lines) != 2 {
		t.Errorf("expected 2 line summaries, got %d", len(result.Lines))
	}
}

func TestCompute_NoRuleApplies(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierStandard}
	rules := []domain.DiscountRule{
		{Tier: domain.TierStandard, MinPurchase: 200, Percent: 5},
		{Tier: domain.TierPremium, MinPurchase: 50, Percent: 10},
	}

	result, _ := Compute(testOrder(), customer, testProducts(), rules)

	if result.Discount != 0 {
		t.Errorf("expected no discount, got %v", result.Discount)
	}
	if result.Total != result.Subtotal {
		t.Errorf("expected total == subtotal, got %v != %v", result.Total, result.Subtotal)
	}
}

func TestCompute_FirstMatchingRuleWins(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierPremium}
	// Both rules match; the first in store order applies even though the
	// second gives a bigger discount.
	rules := []domain.DiscountRule{
		{Tier: domain.TierPremium, MinPurchase: 10, Percent: 5},
		{Tier: domain.TierPremium, MinPurchase: 50, Percent: 20},
	}

	result, _ := Compute(testOrder(), customer, testProducts(), rules)

	if result.Discount != 5 {
		t.Errorf("expected discount 5 from first matching rule, got %v", result.Discount)
	}
}

func TestCompute_MissingProducts(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierStandard}
	products := map[string]*domain.Product{
		"prod-1": {ID: "prod-1", Name: "Keyboard"},
	}

	result, missing := Compute(testOrder(), customer, products, nil)

	if len(result.Lines) != 1 {
		t.Fatalf("expected 1 line summary, got %d", len(result.Lines))
	}
	if len(missing) != 1 || missing[0] != "prod-2" {
		t.Fatalf("expected missing [prod-2], got %v", missing)
	}
	if result.Subtotal != 50 {
		t.Errorf("expected subtotal 50, got %v", result.Subtotal)
	}
}

func TestCompute_AllProductsMissing(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierVIP}

	result, missing := Compute(testOrder(), customer, map[string]*domain.Product{}, nil)

	if len(missing) != 2 {
		t.Fatalf("expected 2 missing products, got %v", missing)
	}
	if result.Subtotal != 0 || result.Total != 0 || result.LoyaltyPoints != 0 {
		t.Errorf("expected zero totals, got subtotal=%v total=%v points=%d",
			result.Subtotal, result.Total, result.LoyaltyPoints)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierPremium}
	rules := []domain.DiscountRule{{Tier: domain.TierPremium, MinPurchase: 50, Percent: 10}}

	a, missingA := Compute(testOrder(), customer, testProducts(), rules)
	b, missingB := Compute(testOrder(), customer, testProducts(), rules)

	if a.Subtotal != b.Subtotal || a.Discount != b.Discount ||
		a.Total != b.Total || a.LoyaltyPoints != b.LoyaltyPoints {
		t.Errorf("identical inputs produced different results: %+v vs %+v", a, b)
	}
	if len(missingA) != len(missingB) {
		t.Errorf("identical inputs produced different missing lists")
	}
}

func TestLoyaltyPoints_TierOrdering(t *testing.T) {
	totals := []float64{0, 9.99, 10, 55, 90, 123.45, 1000}
	for _, total := range totals {
		std := loyaltyPoints(total, domain.TierStandard)
		prem := loyaltyPoints(total, domain.TierPremium)
		vip := loyaltyPoints(total, domain.TierVIP)
		if std > prem || prem > vip {
			t.Errorf("total %v: expected standard <= premium <= vip, got %d/%d/%d",
				total, std, prem, vip)
		}
	}
}

func TestCompute_DiscountBounds(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		minBuy   float64
		wantZero bool
	}{
		{"full discount", 100, 0, false},
		{"threshold above subtotal", 10, 1000, true},
		{"zero percent", 0, 0, true},
	}

	customer := &domain.Customer{ID: "cust-456", Tier: domain.TierPremium}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []domain.DiscountRule{
				{Tier: domain.TierPremium, MinPurchase: tt.minBuy, Percent: tt.percent},
			}
			result, _ := Compute(testOrder(), customer, testProducts(), rules)
			if result.Discount < 0 || result.Discount > result.Subtotal {
				t.Errorf("discount %v out of [0, subtotal=%v]", result.Discount, result.Subtotal)
			}
			if tt.wantZero && result.Discount != 0 {
				t.Errorf("expected zero discount, got %v", result.Discount)
			}
			if result.Total != result.Subtotal-result.Discount {
				t.Errorf("total invariant broken: %v != %v - %v",
					result.Total, result.Subtotal, result.Discount)
			}
		})
	}
}

func TestStockDeltas(t *testing.T) {
	result := &domain.ProcessedOrder{
		Lines: []domain.LineSummary{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 1},
		},
	}

	deltas := StockDeltas(result)

	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if deltas[0].ProductID != "prod-1" || deltas[0].Delta != -2 {
		t.Errorf("unexpected first delta: %+v", deltas[0])
	}
	if deltas[1].ProductID != "prod-2" || deltas[1].Delta != -1 {
		t.Errorf("unexpected second delta: %+v", deltas[1])
	}
}

func TestMissingProductAlerts(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	alerts := MissingProductAlerts("order-123", []string{"prod-7", "prod-8"}, at)

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].ProductID != "prod-7" || alerts[0].OrderID != "order-123" || !alerts[0].At.Equal(at) {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
}

func TestConfirmationEmail(t *testing.T) {
	result := &domain.ProcessedOrder{
		OrderID:  "order-123",
		Subtotal: 100, Discount: 10, Total: 90,
		LoyaltyPoints: 13,
		Lines: []domain.LineSummary{
			{ProductID: "prod-1", Name: "Keyboard", Quantity: 2, UnitPrice: 25, LineTotal: 50},
		},
	}

	subject, body := ConfirmationEmail(result)

	if subject != "Order order-123 confirmed" {
		t.Errorf("unexpected subject: %q", subject)
	}
	for _, want := range []string{"Keyboard", "Total: 90.00", "Discount: -10.00", "Loyalty points earned: 13"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
