package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderNotFound  = errors.New("order not found")
	ErrNoReorderDraft = errors.New("no reorder draft in session")
)

// CheckoutService turns carts into persisted orders and drives the
// reorder/repayment flow. The order write is the durable commit point; the
// stock decrements that follow are best-effort, so a committed order survives
// inventory faults at the cost of possible reconciliation drift.
type CheckoutService struct {
	inventory InventoryStore
	orders    OrderStore
	sessions  SessionStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewCheckoutService(inventory InventoryStore, orders OrderStore, sessions SessionStore, publisher EventPublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		inventory: inventory,
		orders:    orders,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, sess *domain.SessionContext, req domain.CheckoutRequest) (*domain.Order, error) {
	if sess.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		OrderID:      uuid.NewString(),
		Name:         req.Name,
		Address:      req.Address,
		Payment:      req.Payment,
		Total:        sess.Cart.Total(),
		Prescription: req.Prescription,
		Items:        orderItems(sess.Cart),
		OrderDate:    time.Now(),
	}

	// Durable commit point. Failure here fails the checkout and leaves the
	// cart untouched.
	if err := s.orders.PutOrder(ctx, order); err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.String("name", order.Name),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)))

	s.publishOrderCreated(ctx, order)
	s.deductInventory(ctx, order)

	sess.LastOrderName = order.Name
	sess.Cart.Clear()
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The order is committed; an unsaved session only leaves a stale cart.
		s.logger.Error("Failed to save session after checkout",
			zap.String("session_id", sess.SessionID),
			zap.Error(err))
	}

	return order, nil
}

// deductInventory walks every order item even when earlier decrements fail.
// The conditional decrement refuses to drive stock negative; an
// insufficient-stock result here means the order oversold and is left for
// reconciliation.
func (s *CheckoutService) deductInventory(ctx context.Context, order *domain.Order) {
	for _, item := range order.Items {
		newStock, previousStock, err := s.inventory.DeductStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.logger.Error("Stock deduction failed after order commit",
				zap.String("order_id", order.OrderID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Int("previous_stock", previousStock),
				zap.Error(err))
			continue
		}

		s.logger.Info("Stock deducted",
			zap.String("product_id", item.ProductID),
			zap.Int("previous_stock", previousStock),
			zap.Int("deducted", item.Quantity),
			zap.Int("new_stock", newStock))

		if newStock <= 0 {
			if err := s.inventory.SetAvailability(ctx, item.ProductID, false); err != nil {
				s.logger.Error("Availability update failed",
					zap.String("product_id", item.ProductID),
					zap.Error(err))
			}
		}
	}
}

func (s *CheckoutService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	event := events.NewOrderCreatedEvent(order)
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish order event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}

// BeginReorder copies a past order's financial terms into the session,
// replacing any draft already there.
func (s *CheckoutService) BeginReorder(ctx context.Context, sess *domain.SessionContext, orderID string) (*domain.ReorderDraft, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	sess.Reorder = &domain.ReorderDraft{
		Name:    order.Name,
		Address: order.Address,
		Payment: order.Payment,
		Total:   order.Total,
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess.Reorder, nil
}

func (s *CheckoutService) ViewPayment(sess *domain.SessionContext) (*domain.ReorderDraft, error) {
	if sess.Reorder == nil {
		return nil, ErrNoReorderDraft
	}
	return sess.Reorder, nil
}

// ConfirmPayment re-bills a draft as a fresh order. Reordering is a payment
// action, not a fulfillment one: inventory is neither read nor decremented.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, sess *domain.SessionContext) (*domain.Order, error) {
	if sess.Reorder == nil {
		return nil, ErrNoReorderDraft
	}

	draft := sess.Reorder
	order := &domain.Order{
		OrderID:   uuid.NewString(),
		Name:      draft.Name,
		Address:   draft.Address,
		Payment:   draft.Payment,
		Total:     draft.Total,
		OrderDate: time.Now(),
	}

	if err := s.orders.PutOrder(ctx, order); err != nil {
		s.logger.Error("Failed to persist reorder",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Reorder created",
		zap.String("order_id", order.OrderID),
		zap.String("name", order.Name),
		zap.Float64("total", order.Total))

	sess.Reorder = nil
	sess.LastOrderName = order.Name
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("Failed to save session after reorder",
			zap.String("session_id", sess.SessionID),
			zap.Error(err))
	}

	return order, nil
}

// ListOrders returns the history for the name the session last ordered under.
func (s *CheckoutService) ListOrders(ctx context.Context, sess *domain.SessionContext, filter domain.HistoryFilter) ([]domain.Order, error) {
	if sess.LastOrderName == "" {
		return nil, nil
	}
	return s.orders.ListOrders(ctx, sess.LastOrderName, filter)
}

func orderItems(cart domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.PriceAtAdd,
		})
	}
	return items
}
