package memory

import (
	"context"
	"testing"

	"github.com/minhph/orderflow/internal/core/domain"
)

func TestOrderRepo_GetByID(t *testing.T) {
	store := NewMemoryStorage()
	store.AddOrder(&domain.Order{
		ID:         "order-1",
		CustomerID: "cust-1",
		Items:      []domain.Item{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
	})
	repo := NewOrderRepo(store)

	order, err := repo.GetByID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if order == nil || order.CustomerID != "cust-1" || len(order.Items) != 1 {
		t.Errorf("unexpected order: %+v", order)
	}

	// Absent order is (nil, nil), not an error.
	missing, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for absent order, got %+v", missing)
	}
}

func TestCustomerRepo_UpdateTotalPurchases(t *testing.T) {
	store := NewMemoryStorage()
	store.AddCustomer(&domain.Customer{ID: "cust-1", TotalPurchases: 100})
	repo := NewCustomerRepo(store)

	if err := repo.UpdateTotalPurchases(context.Background(), "cust-1", 90); err != nil {
		t.Fatalf("UpdateTotalPurchases failed: %v", err)
	}

	customer, _ := repo.GetByID(context.Background(), "cust-1")
	if customer.TotalPurchases != 190 {
		t.Errorf("expected total 190, got %v", customer.TotalPurchases)
	}

	if err := repo.UpdateTotalPurchases(context.Background(), "nope", 1); err == nil {
		t.Error("expected error for unknown customer")
	}
}

func TestProductRepo_GetByIDs_AbsentIDsMissing(t *testing.T) {
	store := NewMemoryStorage()
	store.AddProduct(&domain.Product{ID: "p1", Name: "Keyboard", Stock: 5})
	repo := NewProductRepo(store)

	products, err := repo.GetByIDs(context.Background(), []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if _, ok := products["p2"]; ok {
		t.Error("absent id should be missing from the map")
	}
}

func TestProductRepo_UpdateInventory(t *testing.T) {
	store := NewMemoryStorage()
	store.AddProduct(&domain.Product{ID: "p1", Stock: 10})
	repo := NewProductRepo(store)

	err := repo.UpdateInventory(context.Background(),
		[]domain.StockDelta{{ProductID: "p1", Delta: -3}})
	if err != nil {
		t.Fatalf("UpdateInventory failed: %v", err)
	}

	products, _ := repo.GetByIDs(context.Background(), []string{"p1"})
	if products["p1"].Stock != 7 {
		t.Errorf("expected stock 7, got %d", products["p1"].Stock)
	}
}

func TestRuleRepo_PreservesOrder(t *testing.T) {
	store := NewMemoryStorage()
	store.SetRules([]domain.DiscountRule{
		{Tier: domain.TierPremium, MinPurchase: 50, Percent: 10},
		{Tier: domain.TierPremium, MinPurchase: 10, Percent: 5},
	})
	repo := NewRuleRepo(store)

	rules, err := repo.GetDiscountRules(context.Background())
	if err != nil {
		t.Fatalf("GetDiscountRules failed: %v", err)
	}
	if len(rules) != 2 || rules[0].Percent != 10 || rules[1].Percent != 5 {
		t.Errorf("rule order not preserved: %+v", rules)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	store := NewMemoryStorage()
	store.AddCustomer(&domain.Customer{ID: "cust-1", TotalPurchases: 100})
	repo := NewCustomerRepo(store)

	customer, _ := repo.GetByID(context.Background(), "cust-1")
	customer.TotalPurchases = 9999

	again, _ := repo.GetByID(context.Background(), "cust-1")
	if again.TotalPurchases != 100 {
		t.Error("mutating a fetched customer must not change the store")
	}
}
