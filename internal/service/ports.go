package service

import (
	"context"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
)

// InventoryStore is the system of record for products and their stock
// counts. DeductStock is a single conditional decrement: it fails with
// ErrInsufficientStock instead of letting stock go negative.
type InventoryStore interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	SetStock(ctx context.Context, productID string, stock int) (*domain.Product, error)
	SetAvailability(ctx context.Context, productID string, available bool) error
	DeleteProduct(ctx context.Context, productID string) error
	DeductStock(ctx context.Context, productID string, quantity int) (newStock int, previousStock int, err error)
}

type OrderStore interface {
	PutOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, name string, filter domain.HistoryFilter) ([]domain.Order, error)
}

type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.SessionContext, error)
	Save(ctx context.Context, sess *domain.SessionContext) error
	Delete(ctx context.Context, sessionID string) error
}

// EventPublisher announces committed orders. Publishing is best-effort and
// never blocks a checkout.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error
}
