package domain

import "time"

// OrderItem is one line of an order. PriceAtOrder is the unit price the
// client observed at purchase time; it is recorded verbatim, not recomputed.
type OrderItem struct {
	ProductRef   string  `json:"product_ref"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// Order is an immutable purchase record. UserID holds the username of the
// principal that created it — the ledger never validates that the account
// still exists. Total is accepted as supplied by the client; this trust
// boundary is deliberate and documented in the service contract.
type Order struct {
	ID     string      `json:"id"`
	Date   time.Time   `json:"date"`
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
	Total  float64     `json:"total"`
}
