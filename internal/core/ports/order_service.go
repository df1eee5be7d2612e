package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// OrderItemInput is one requested order line, recorded as supplied.
type OrderItemInput struct {
	ProductRef   string
	Quantity     int
	PriceAtOrder float64
}

// CreateOrderInput carries the client-supplied order body. Items and Total
// are trusted verbatim; the ledger does not recompute pricing against the
// catalog.
type CreateOrderInput struct {
	Items []OrderItemInput
	Total float64
}

// OrderService records and lists orders.
type OrderService interface {
	Create(ctx context.Context, principal domain.Principal, in CreateOrderInput) (*domain.Order, error)
	// List returns every order for an admin principal, and only the
	// principal's own orders otherwise.
	List(ctx context.Context, principal domain.Principal) ([]domain.Order, error)
}
