package domain

// SessionContext is the per-visitor state the storefront keeps between
// requests: the cart, an optional reorder draft, and the name the last order
// was placed under. It belongs to exactly one session and is loaded and saved
// by the session store around each request.
type SessionContext struct {
	SessionID     string        `json:"session_id"`
	Cart          Cart          `json:"cart"`
	Reorder       *ReorderDraft `json:"reorder,omitempty"`
	LastOrderName string        `json:"last_order_name,omitempty"`
}

func NewSessionContext(sessionID string) *SessionContext {
	return &SessionContext{SessionID: sessionID}
}
