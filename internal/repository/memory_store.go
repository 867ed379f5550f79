package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// In-memory stores backing LOCAL_MODE runs and tests. They mirror the
// DynamoDB and Redis implementations method for method, including the
// conditional stock decrement.

type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]*domain.Product),
	}
}

func (s *MemoryProductStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ProductID] = cloneProduct(product)
	return nil
}

func (s *MemoryProductStore) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (s *MemoryProductStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})

	return products, nil
}

func (s *MemoryProductStore) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.Price = req.Price
	if req.Image != "" {
		p.Image = req.Image
	}
	p.UpdatedAt = time.Now()

	return cloneProduct(p), nil
}

func (s *MemoryProductStore) SetStock(ctx context.Context, productID string, stock int) (*domain.Product, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}

	p.Stock = stock
	p.Available = stock > 0
	p.UpdatedAt = time.Now()

	return cloneProduct(p), nil
}

func (s *MemoryProductStore) SetAvailability(ctx context.Context, productID string, available bool) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return ErrProductNotFound
	}

	p.Available = available
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProductStore) DeleteProduct(ctx context.Context, productID string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, productID)
	return nil
}

// DeductStock decrements under the lock, refusing any deduction that would
// push stock below zero.
func (s *MemoryProductStore) DeductStock(ctx context.Context, productID string, quantity int) (newStock int, previousStock int, err error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return 0, 0, ErrProductNotFound
	}

	previousStock = p.Stock
	if p.Stock < quantity {
		return 0, previousStock, ErrInsufficientStock
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()

	return p.Stock, previousStock, nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[string]*domain.Order),
	}
}

func (s *MemoryOrderStore) PutOrder(ctx context.Context, order *domain.Order) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	s.orders[order.OrderID] = &clone
	return nil
}

func (s *MemoryOrderStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}

	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone, nil
}

func (s *MemoryOrderStore) ListOrders(ctx context.Context, name string, filter domain.HistoryFilter) ([]domain.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []domain.Order
	for _, o := range s.orders {
		if o.Name != name {
			continue
		}
		if filter.Payment != "" && o.Payment != filter.Payment {
			continue
		}
		orders = append(orders, *o)
	}

	orders = FilterOrdersByDate(orders, filter)

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SessionContext
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*domain.SessionContext),
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*domain.SessionContext, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sess *domain.SessionContext) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.SessionID] = cloneSession(sess)
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func cloneSession(sess *domain.SessionContext) *domain.SessionContext {
	clone := *sess
	clone.Cart.Items = append([]domain.LineItem(nil), sess.Cart.Items...)
	if sess.Reorder != nil {
		draft := *sess.Reorder
		clone.Reorder = &draft
	}
	return &clone
}
