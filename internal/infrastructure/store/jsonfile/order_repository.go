package jsonfile

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

const ordersCollection = "orders"

// OrderRepository persists orders in the "orders" collection.
type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Append adds an order under the collection lock, so concurrent appends
// each land on a fresh snapshot and none is lost.
func (r *OrderRepository) Append(ctx context.Context, order *domain.Order) error {
	return Update(r.store, ordersCollection, func(recs []domain.Order) ([]domain.Order, error) {
		return append(recs, *order), nil
	})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return Read[domain.Order](r.store, ordersCollection)
}

func (r *OrderRepository) ListByUser(ctx context.Context, username string) ([]domain.Order, error) {
	recs, err := Read[domain.Order](r.store, ordersCollection)
	if err != nil {
		return nil, err
	}
	own := make([]domain.Order, 0, len(recs))
	for _, o := range recs {
		if o.UserID == username {
			own = append(own, o)
		}
	}
	return own, nil
}
