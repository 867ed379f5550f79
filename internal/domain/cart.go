package domain

// LineItem is a snapshot of a product taken when it entered the cart.
// Price is frozen at insertion; StockHint is the stock observed then and is
// display-only, never re-validated on reads.
type LineItem struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	PriceAtAdd float64 `json:"price_at_add"`
	Quantity   int     `json:"quantity"`
	StockHint  int     `json:"stock_hint"`
}

// Cart holds at most one LineItem per product id, in insertion order.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) Find(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total sums frozen unit prices times quantities.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.PriceAtAdd * float64(item.Quantity)
	}
	return total
}

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeNoOp    Outcome = "noop"
)

type NoOpReason string

const (
	ReasonProductNotFound NoOpReason = "product_not_found"
	ReasonItemNotInCart   NoOpReason = "item_not_in_cart"
	ReasonStockLimit      NoOpReason = "stock_limit"
	ReasonQuantityFloor   NoOpReason = "quantity_floor"
	ReasonUnknownAction   NoOpReason = "unknown_action"
)

// MutationResult reports whether a cart mutation changed anything. Cart
// operations are best-effort: invalid input never fails, it no-ops with a
// reason so callers and tests can tell the cases apart.
type MutationResult struct {
	Outcome Outcome    `json:"outcome"`
	Reason  NoOpReason `json:"reason,omitempty"`
}

func Applied() MutationResult {
	return MutationResult{Outcome: OutcomeApplied}
}

func NoOp(reason NoOpReason) MutationResult {
	return MutationResult{Outcome: OutcomeNoOp, Reason: reason}
}

func (r MutationResult) IsApplied() bool {
	return r.Outcome == OutcomeApplied
}

// UpdateAction is the action field of the generic cart update endpoint.
type UpdateAction string

const (
	ActionIncrease UpdateAction = "increase"
	ActionDecrease UpdateAction = "decrease"
)
