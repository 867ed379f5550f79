package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

// CartService mutates a session's cart against live inventory. Every
// operation validates against the inventory store at call time; invalid input
// (unknown product, missing line) no-ops instead of failing, matching the
// storefront's best-effort UX. Only infrastructure faults return errors.
type CartService struct {
	inventory InventoryStore
	sessions  SessionStore
	logger    *zap.Logger
}

func NewCartService(inventory InventoryStore, sessions SessionStore, logger *zap.Logger) *CartService {
	return &CartService{
		inventory: inventory,
		sessions:  sessions,
		logger:    logger,
	}
}

// AddItem puts one unit of a product into the cart, freezing its price. An
// existing line is incremented only while below the stock observed when the
// line was created; the cap is silent. The authoritative guard is
// IncreaseQuantity, which re-reads stock.
func (s *CartService) AddItem(ctx context.Context, sess *domain.SessionContext, productID string) (domain.MutationResult, error) {
	product, err := s.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Warn("Add to cart for unknown product",
				zap.String("product_id", productID),
				zap.String("session_id", sess.SessionID))
			return domain.NoOp(domain.ReasonProductNotFound), nil
		}
		return domain.MutationResult{}, err
	}

	if line := sess.Cart.Find(productID); line != nil {
		if line.Quantity >= line.StockHint {
			s.logger.Info("Stock limit reached for cart item",
				zap.String("product_id", productID),
				zap.Int("quantity", line.Quantity),
				zap.Int("stock_hint", line.StockHint))
			return domain.NoOp(domain.ReasonStockLimit), nil
		}
		line.Quantity++
	} else {
		sess.Cart.Items = append(sess.Cart.Items, domain.LineItem{
			ProductID:  product.ProductID,
			Name:       product.Name,
			PriceAtAdd: product.Price,
			Quantity:   1,
			StockHint:  product.Stock,
		})
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.MutationResult{}, err
	}

	return domain.Applied(), nil
}

// RemoveItem deletes a line outright. Removing an absent line is a no-op, so
// repeated removals are safe.
func (s *CartService) RemoveItem(ctx context.Context, sess *domain.SessionContext, productID string) (domain.MutationResult, error) {
	if !sess.Cart.Remove(productID) {
		return domain.NoOp(domain.ReasonItemNotInCart), nil
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.MutationResult{}, err
	}

	return domain.Applied(), nil
}

// IncreaseQuantity bumps a line by one, guarded by a fresh stock read. The
// stock hint cached on the line is never trusted here.
func (s *CartService) IncreaseQuantity(ctx context.Context, sess *domain.SessionContext, productID string) (domain.MutationResult, error) {
	line := sess.Cart.Find(productID)
	if line == nil {
		return domain.NoOp(domain.ReasonItemNotInCart), nil
	}

	product, err := s.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.NoOp(domain.ReasonProductNotFound), nil
		}
		return domain.MutationResult{}, err
	}

	if line.Quantity >= product.Stock {
		s.logger.Info("Stock limit reached for cart item",
			zap.String("product_id", productID),
			zap.Int("quantity", line.Quantity),
			zap.Int("stock", product.Stock))
		return domain.NoOp(domain.ReasonStockLimit), nil
	}

	line.Quantity++

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.MutationResult{}, err
	}

	return domain.Applied(), nil
}

// DecreaseQuantity lowers a line by one but never below one. Dropping a line
// is only ever done by RemoveItem.
func (s *CartService) DecreaseQuantity(ctx context.Context, sess *domain.SessionContext, productID string) (domain.MutationResult, error) {
	line := sess.Cart.Find(productID)
	if line == nil {
		return domain.NoOp(domain.ReasonItemNotInCart), nil
	}

	if line.Quantity <= 1 {
		return domain.NoOp(domain.ReasonQuantityFloor), nil
	}

	line.Quantity--

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.MutationResult{}, err
	}

	return domain.Applied(), nil
}

// UpdateQuantity dispatches the generic update endpoint's action field.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *domain.SessionContext, productID string, action domain.UpdateAction) (domain.MutationResult, error) {
	switch action {
	case domain.ActionIncrease:
		return s.IncreaseQuantity(ctx, sess, productID)
	case domain.ActionDecrease:
		return s.DecreaseQuantity(ctx, sess, productID)
	default:
		return domain.NoOp(domain.ReasonUnknownAction), nil
	}
}
