package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/minhph/orderflow/internal/core/domain"
)

// MemoryStorage is an in-memory store used when no database is configured
// and as a test double. All repositories share one mutex-guarded state.
type MemoryStorage struct {
	orders    map[string]*domain.Order
	customers map[string]*domain.Customer
	products  map[string]*domain.Product
	rules     []domain.DiscountRule
	mu        sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		orders:    make(map[string]*domain.Order),
		customers: make(map[string]*domain.Customer),
		products:  make(map[string]*domain.Product),
	}
}

// Seed helpers for demo mode and tests.

func (s *MemoryStorage) AddOrder(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

func (s *MemoryStorage) AddCustomer(customer *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *MemoryStorage) AddProduct(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

func (s *MemoryStorage) SetRules(rules []domain.DiscountRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = rules
}

// -----------------------------------------------------------------------------
// Order Repository
// -----------------------------------------------------------------------------

type OrderRepo struct {
	store *MemoryStorage
}

func NewOrderRepo(store *MemoryStorage) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	order, ok := r.store.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *order
	cp.Items = append([]domain.Item(nil), order.Items...)
	return &cp, nil
}

// -----------------------------------------------------------------------------
// Customer Repository
// -----------------------------------------------------------------------------

type CustomerRepo struct {
	store *MemoryStorage
}

func NewCustomerRepo(store *MemoryStorage) *CustomerRepo {
	return &CustomerRepo{store: store}
}

func (r *CustomerRepo) GetByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	customer, ok := r.store.customers[customerID]
	if !ok {
		return nil, nil
	}
	cp := *customer
	return &cp, nil
}

func (r *CustomerRepo) UpdateTotalPurchases(ctx context.Context, customerID string, amount float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	customer, ok := r.store.customers[customerID]
	if !ok {
		return fmt.Errorf("customer %s not found", customerID)
	}
	customer.TotalPurchases += amount
	return nil
}

// -----------------------------------------------------------------------------
// Product Repository
// -----------------------------------------------------------------------------

type ProductRepo struct {
	store *MemoryStorage
}

func NewProductRepo(store *MemoryStorage) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) GetByIDs(ctx context.Context, productIDs []string) (map[string]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	products := make(map[string]*domain.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := r.store.products[id]; ok {
			cp := *p
			products[id] = &cp
		}
	}
	return products, nil
}

func (r *ProductRepo) UpdateInventory(ctx context.Context, deltas []domain.StockDelta) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range deltas {
		product, ok := r.store.products[d.ProductID]
		if !ok {
			return fmt.Errorf("product %s not found", d.ProductID)
		}
		product.Stock += d.Delta
	}
	return nil
}

// -----------------------------------------------------------------------------
// Discount Rule Repository
// -----------------------------------------------------------------------------

type RuleRepo struct {
	store *MemoryStorage
}

func NewRuleRepo(store *MemoryStorage) *RuleRepo {
	return &RuleRepo{store: store}
}

func (r *RuleRepo) GetDiscountRules(ctx context.Context) ([]domain.DiscountRule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.DiscountRule(nil), r.store.rules...), nil
}
