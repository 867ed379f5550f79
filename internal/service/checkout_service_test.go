package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderCreatedEvent
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// failingOrderStore rejects writes to exercise the fatal-persistence path.
type failingOrderStore struct {
	err error
}

func (s *failingOrderStore) PutOrder(ctx context.Context, order *domain.Order) error {
	return s.err
}

func (s *failingOrderStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (s *failingOrderStore) ListOrders(ctx context.Context, name string, filter domain.HistoryFilter) ([]domain.Order, error) {
	return nil, nil
}

type checkoutFixture struct {
	svc       *CheckoutService
	inventory *repository.MemoryProductStore
	orders    *repository.MemoryOrderStore
	publisher *recordingPublisher
	sess      *domain.SessionContext
}

func newCheckoutFixture(t *testing.T, products ...*domain.Product) *checkoutFixture {
	t.Helper()

	inventory := repository.NewMemoryProductStore()
	for _, p := range products {
		require.NoError(t, inventory.CreateProduct(context.Background(), p))
	}

	orders := repository.NewMemoryOrderStore()
	sessions := repository.NewMemorySessionStore()
	publisher := &recordingPublisher{}

	return &checkoutFixture{
		svc:       NewCheckoutService(inventory, orders, sessions, publisher, zap.NewNop()),
		inventory: inventory,
		orders:    orders,
		publisher: publisher,
		sess:      domain.NewSessionContext("sess-1"),
	}
}

func checkoutReq() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Name:    "Jordan Reyes",
		Address: "12 Harbor Lane",
		Payment: "card",
	}
}

func TestCheckoutTotal(t *testing.T) {
	f := newCheckoutFixture(t)
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 10.00, Quantity: 2, StockHint: 5},
		{ProductID: "p2", PriceAtAdd: 5.50, Quantity: 3, StockHint: 5},
	}

	order, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)
	assert.InDelta(t, 36.50, order.Total, 1e-9)
	assert.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.OrderID)
	assert.WithinDuration(t, time.Now(), order.OrderDate, time.Minute)
}

func TestCheckoutClearsCart(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 2.00, Stock: 10, Available: true,
	})
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 2.00, Quantity: 3, StockHint: 10},
	}

	order, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)

	assert.True(t, f.sess.Cart.IsEmpty())
	// the returned order still reflects the pre-clear contents
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "Jordan Reyes", f.sess.LastOrderName)

	stored, err := f.orders.GetOrder(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.InDelta(t, 6.00, stored.Total, 1e-9)
}

func TestCheckoutDecrementsStock(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 5, Available: true,
	})
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 1.00, Quantity: 3, StockHint: 5},
	}

	_, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)

	p, err := f.inventory.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
	assert.True(t, p.Available)
}

func TestCheckoutExhaustingStockDisablesProduct(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 5, Available: true,
	})
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 1.00, Quantity: 5, StockHint: 5},
	}

	_, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)

	p, err := f.inventory.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.Available)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 5, Available: true,
	})

	order, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)

	// inventory untouched
	p, err := f.inventory.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutOrderPersistenceFailureKeepsCart(t *testing.T) {
	inventory := repository.NewMemoryProductStore()
	require.NoError(t, inventory.CreateProduct(context.Background(), &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 5, Available: true,
	}))
	sessions := repository.NewMemorySessionStore()
	svc := NewCheckoutService(inventory, &failingOrderStore{err: errors.New("store unreachable")}, sessions, nil, zap.NewNop())

	sess := domain.NewSessionContext("sess-1")
	sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 1.00, Quantity: 2, StockHint: 5},
	}

	order, err := svc.Checkout(context.Background(), sess, checkoutReq())
	require.Error(t, err)
	assert.Nil(t, order)

	// the cart survives a failed checkout and stock is untouched
	assert.Len(t, sess.Cart.Items, 1)
	p, err := inventory.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestCheckoutContinuesPastDecrementFailure(t *testing.T) {
	// p1 oversold (another buyer emptied it), p2 fine: p2 must still be
	// decremented and the checkout must succeed.
	f := newCheckoutFixture(t,
		&domain.Product{ProductID: "p1", Price: 1.00, Stock: 1, Available: true},
		&domain.Product{ProductID: "p2", Price: 2.00, Stock: 5, Available: true},
	)
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 1.00, Quantity: 3, StockHint: 3},
		{ProductID: "p2", PriceAtAdd: 2.00, Quantity: 2, StockHint: 5},
	}

	order, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)
	require.NotNil(t, order)

	p1, err := f.inventory.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Stock) // conditional decrement refused, no negative stock

	p2, err := f.inventory.GetProduct(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 3, p2.Stock)
}

func TestCheckoutPublishesOrderEvent(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.50, Stock: 5, Available: true,
	})
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 1.50, Quantity: 2, StockHint: 5},
	}

	order, err := f.svc.Checkout(context.Background(), f.sess, checkoutReq())
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, order.OrderID, event.OrderID)
	assert.InDelta(t, 3.00, event.Total, 1e-9)
	require.Len(t, event.Items, 1)
	assert.Equal(t, "p1", event.Items[0].ProductID)
}

func TestReorderIndependence(t *testing.T) {
	f := newCheckoutFixture(t, &domain.Product{
		ProductID: "p1", Price: 10.00, Stock: 5, Available: true,
	})
	f.sess.Cart.Items = []domain.LineItem{
		{ProductID: "p1", PriceAtAdd: 10.00, Quantity: 2, StockHint: 5},
	}
	ctx := context.Background()

	original, err := f.svc.Checkout(ctx, f.sess, checkoutReq())
	require.NoError(t, err)

	stockAfterCheckout, err := f.inventory.GetProduct(ctx, "p1")
	require.NoError(t, err)

	draft, err := f.svc.BeginReorder(ctx, f.sess, original.OrderID)
	require.NoError(t, err)
	assert.Equal(t, original.Name, draft.Name)
	assert.Equal(t, original.Total, draft.Total)

	reorder, err := f.svc.ConfirmPayment(ctx, f.sess)
	require.NoError(t, err)

	assert.NotEqual(t, original.OrderID, reorder.OrderID)
	assert.Equal(t, original.Name, reorder.Name)
	assert.Equal(t, original.Address, reorder.Address)
	assert.Equal(t, original.Payment, reorder.Payment)
	assert.Equal(t, original.Total, reorder.Total)

	// reordering never touches inventory
	p, err := f.inventory.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, stockAfterCheckout.Stock, p.Stock)

	// draft is consumed
	assert.Nil(t, f.sess.Reorder)
	_, err = f.svc.ConfirmPayment(ctx, f.sess)
	assert.ErrorIs(t, err, ErrNoReorderDraft)
}

func TestBeginReorderUnknownOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.BeginReorder(context.Background(), f.sess, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, f.sess.Reorder)
}

func TestBeginReorderReplacesDraft(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	first := &domain.Order{OrderID: "o1", Name: "A", Total: 10, OrderDate: time.Now()}
	second := &domain.Order{OrderID: "o2", Name: "B", Total: 20, OrderDate: time.Now()}
	require.NoError(t, f.orders.PutOrder(ctx, first))
	require.NoError(t, f.orders.PutOrder(ctx, second))

	_, err := f.svc.BeginReorder(ctx, f.sess, "o1")
	require.NoError(t, err)
	_, err = f.svc.BeginReorder(ctx, f.sess, "o2")
	require.NoError(t, err)

	draft, err := f.svc.ViewPayment(f.sess)
	require.NoError(t, err)
	assert.Equal(t, "B", draft.Name)
	assert.Equal(t, 20.0, draft.Total)
}

func TestViewPaymentWithoutDraft(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.ViewPayment(f.sess)
	assert.ErrorIs(t, err, ErrNoReorderDraft)
}

func TestListOrdersWithoutHistory(t *testing.T) {
	f := newCheckoutFixture(t)

	orders, err := f.svc.ListOrders(context.Background(), f.sess, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestListOrdersFiltered(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sess.LastOrderName = "Jordan Reyes"
	put := func(id, payment string, date time.Time) {
		require.NoError(t, f.orders.PutOrder(ctx, &domain.Order{
			OrderID: id, Name: "Jordan Reyes", Payment: payment, OrderDate: date,
		}))
	}
	put("o1", "card", time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC))
	put("o2", "cod", time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC))
	put("o3", "card", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	put("o4", "card", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))

	orders, err := f.svc.ListOrders(ctx, f.sess, domain.HistoryFilter{
		Month: 3, Year: 2026, Payment: "card",
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].OrderID)

	// unfiltered comes back newest first
	orders, err = f.svc.ListOrders(ctx, f.sess, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, "o4", orders[0].OrderID)
}
