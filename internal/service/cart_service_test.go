package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

func newCartFixture(t *testing.T, products ...*domain.Product) (*CartService, *repository.MemoryProductStore, *domain.SessionContext) {
	t.Helper()

	inventory := repository.NewMemoryProductStore()
	for _, p := range products {
		require.NoError(t, inventory.CreateProduct(context.Background(), p))
	}

	sessions := repository.NewMemorySessionStore()
	svc := NewCartService(inventory, sessions, zap.NewNop())
	sess := domain.NewSessionContext("sess-1")

	return svc, inventory, sess
}

func TestAddItem(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Name: "Aspirin", Price: 4.20, Stock: 3, Available: true,
	})
	ctx := context.Background()

	result, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)
	assert.True(t, result.IsApplied())

	require.Len(t, sess.Cart.Items, 1)
	line := sess.Cart.Items[0]
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 4.20, line.PriceAtAdd)
	assert.Equal(t, 3, line.StockHint)
}

func TestAddItemNoDuplicateLines(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 10, Available: true,
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.AddItem(ctx, sess, "p1")
		require.NoError(t, err)
	}

	require.Len(t, sess.Cart.Items, 1)
	assert.Equal(t, 5, sess.Cart.Items[0].Quantity)
}

func TestAddItemCapsAtObservedStock(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 2, Available: true,
	})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.AddItem(ctx, sess, "p1")
		require.NoError(t, err)
	}

	require.Len(t, sess.Cart.Items, 1)
	assert.Equal(t, 2, sess.Cart.Items[0].Quantity)

	result, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonStockLimit, result.Reason)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, sess := newCartFixture(t)
	ctx := context.Background()

	result, err := svc.AddItem(ctx, sess, "ghost")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonProductNotFound, result.Reason)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestAddItemFreezesPrice(t *testing.T) {
	svc, inventory, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Name: "Aspirin", Price: 4.20, Stock: 10, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)

	// a price change after insertion must not reach the line
	_, err = inventory.UpdateProduct(ctx, "p1", domain.UpdateProductRequest{
		Name: "Aspirin", Price: 9.99,
	})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)

	assert.Equal(t, 4.20, sess.Cart.Items[0].PriceAtAdd)
}

func TestIncreaseQuantityUsesFreshStock(t *testing.T) {
	svc, inventory, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 10, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, sess.Cart.Items[0].StockHint)

	// stock drops after the hint was recorded; the fresh read must win
	_, err = inventory.SetStock(ctx, "p1", 2)
	require.NoError(t, err)

	result, err := svc.IncreaseQuantity(ctx, sess, "p1")
	require.NoError(t, err)
	assert.True(t, result.IsApplied())
	assert.Equal(t, 2, sess.Cart.Items[0].Quantity)

	result, err = svc.IncreaseQuantity(ctx, sess, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonStockLimit, result.Reason)
	assert.Equal(t, 2, sess.Cart.Items[0].Quantity)
}

func TestIncreaseQuantityQuantityNeverExceedsStock(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 4, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := svc.IncreaseQuantity(ctx, sess, "p1")
		require.NoError(t, err)
	}

	assert.Equal(t, 4, sess.Cart.Items[0].Quantity)
}

func TestIncreaseQuantityMissingLine(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 4, Available: true,
	})

	result, err := svc.IncreaseQuantity(context.Background(), sess, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonItemNotInCart, result.Reason)
}

func TestDecreaseQuantityFloorsAtOne(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 10, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)
	_, err = svc.IncreaseQuantity(ctx, sess, "p1")
	require.NoError(t, err)

	result, err := svc.DecreaseQuantity(ctx, sess, "p1")
	require.NoError(t, err)
	assert.True(t, result.IsApplied())
	assert.Equal(t, 1, sess.Cart.Items[0].Quantity)

	// repeats no-op, the line is never removed by decrease
	for i := 0; i < 3; i++ {
		result, err = svc.DecreaseQuantity(ctx, sess, "p1")
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonQuantityFloor, result.Reason)
	}
	require.Len(t, sess.Cart.Items, 1)
	assert.Equal(t, 1, sess.Cart.Items[0].Quantity)
}

func TestRemoveItemIdempotent(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 10, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)

	result, err := svc.RemoveItem(ctx, sess, "p1")
	require.NoError(t, err)
	assert.True(t, result.IsApplied())
	assert.True(t, sess.Cart.IsEmpty())

	result, err = svc.RemoveItem(ctx, sess, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonItemNotInCart, result.Reason)
}

func TestUpdateQuantityDispatch(t *testing.T) {
	svc, _, sess := newCartFixture(t, &domain.Product{
		ProductID: "p1", Price: 1.00, Stock: 10, Available: true,
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, sess, "p1")
	require.NoError(t, err)

	result, err := svc.UpdateQuantity(ctx, sess, "p1", domain.ActionIncrease)
	require.NoError(t, err)
	assert.True(t, result.IsApplied())
	assert.Equal(t, 2, sess.Cart.Items[0].Quantity)

	result, err = svc.UpdateQuantity(ctx, sess, "p1", domain.ActionDecrease)
	require.NoError(t, err)
	assert.True(t, result.IsApplied())
	assert.Equal(t, 1, sess.Cart.Items[0].Quantity)

	result, err = svc.UpdateQuantity(ctx, sess, "p1", "explode")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonUnknownAction, result.Reason)
	assert.Equal(t, 1, sess.Cart.Items[0].Quantity)
}
