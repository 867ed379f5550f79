package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// OrderCreatedEvent is published after an order is committed so downstream
// consumers (fulfillment, analytics) can react without being on the checkout
// path.
type OrderCreatedEvent struct {
	EventID   string      `json:"event_id"`
	OrderID   string      `json:"order_id"`
	Name      string      `json:"name"`
	Total     float64     `json:"total"`
	Items     []EventItem `json:"items"`
	Timestamp time.Time   `json:"timestamp"`
}

type EventItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func NewOrderCreatedEvent(order *domain.Order) OrderCreatedEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return OrderCreatedEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.OrderID,
		Name:      order.Name,
		Total:     order.Total,
		Items:     items,
		Timestamp: time.Now(),
	}
}
