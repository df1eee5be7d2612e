package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/oakmart/storefront-api/internal/api/metrics"
	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// OrderService implements the order ledger.
//
// Items and total are recorded exactly as supplied by the client; the
// ledger does not cross-check them against the catalog. This trust
// boundary is part of the documented contract, not an oversight.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// Create records an order for the authenticated principal. The order is
// stamped with a generated id, the server clock, and the principal's
// username; it is immutable thereafter.
func (s *OrderService) Create(ctx context.Context, principal domain.Principal, in ports.CreateOrderInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			ProductRef:   it.ProductRef,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}

	order := &domain.Order{
		ID:     generateID("ord"),
		Date:   time.Now().UTC(),
		UserID: principal.Username,
		Items:  items,
		Total:  in.Total,
	}

	if err := s.repo.Append(ctx, order); err != nil {
		s.log.Error().Err(err).Str("username", principal.Username).Msg("failed to record order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().Str("order_id", order.ID).Str("username", principal.Username).Msg("order recorded")
	return order, nil
}

// List returns every order for an admin, and only the principal's own
// orders otherwise.
func (s *OrderService) List(ctx context.Context, principal domain.Principal) ([]domain.Order, error) {
	if principal.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, principal.Username)
}
