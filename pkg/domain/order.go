package domain

import "time"

// OrderItem is one priced line of a durable order.
type OrderItem struct {
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	UnitPrice int64             `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	LineTotal int64             `json:"line_total"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Order is an immutable, durable record of a completed purchase.
// Invariant: Total == sum of LineTotal, and each LineTotal ==
// UnitPrice * Quantity. Once appended to the ledger it is never updated
// or deleted.
type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	CreatedAt time.Time   `json:"created_at"`
}
