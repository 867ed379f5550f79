package domain

import (
	"time"
)

type Order struct {
	OrderID      string      `dynamodbav:"order_id"     json:"order_id"`
	Name         string      `dynamodbav:"name"         json:"name"`
	Address      string      `dynamodbav:"address"      json:"address"`
	Payment      string      `dynamodbav:"payment"      json:"payment"`
	Total        float64     `dynamodbav:"total"        json:"total"`
	Prescription string      `dynamodbav:"prescription" json:"prescription,omitempty"`
	Items        []OrderItem `dynamodbav:"items"        json:"items,omitempty"`
	OrderDate    time.Time   `dynamodbav:"order_date"   json:"order_date"`
}

type OrderItem struct {
	ProductID string  `dynamodbav:"product_id" json:"product_id"`
	Name      string  `dynamodbav:"name"       json:"name"`
	Quantity  int     `dynamodbav:"quantity"   json:"quantity"`
	Price     float64 `dynamodbav:"price"      json:"price"`
}

type CheckoutRequest struct {
	Name         string `form:"name"    binding:"required"`
	Address      string `form:"address" binding:"required"`
	Payment      string `form:"payment" binding:"required"`
	Prescription string `form:"-"`
}

// HistoryFilter narrows an order-history listing. Zero values mean no filter.
type HistoryFilter struct {
	Month   int
	Year    int
	Payment string
}

// ReorderDraft carries a past order's financial terms through the repayment
// flow. It never touches inventory.
type ReorderDraft struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Payment string  `json:"payment"`
	Total   float64 `json:"total"`
}

type OrderResponse struct {
	OrderID      string      `json:"order_id"`
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	Payment      string      `json:"payment"`
	Total        float64     `json:"total"`
	Prescription string      `json:"prescription,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
	OrderDate    time.Time   `json:"order_date"`
}

func NewOrderResponse(o *Order) OrderResponse {
	return OrderResponse{
		OrderID:      o.OrderID,
		Name:         o.Name,
		Address:      o.Address,
		Payment:      o.Payment,
		Total:        o.Total,
		Prescription: o.Prescription,
		Items:        o.Items,
		OrderDate:    o.OrderDate,
	}
}
