package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence for the order ledger. Orders are
// append-only; Append must serialize against concurrent appends so that no
// order is lost to a stale read-modify-write.
type OrderRepository interface {
	Append(ctx context.Context, order *domain.Order) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, username string) ([]domain.Order, error)
}
