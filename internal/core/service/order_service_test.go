package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders []domain.Order
}

func (r *stubOrderRepo) Append(_ context.Context, order *domain.Order) error {
	r.orders = append(r.orders, *order)
	return nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, username string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == username {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestOrderService_Create_StampsServerFields(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	principal := domain.Principal{ID: "usr-1", Username: "alice", Role: domain.RoleUser}
	order, err := svc.Create(context.Background(), principal, ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductRef: "prd-1", Quantity: 2, PriceAtOrder: 4.5}},
		Total: 9.0,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if order.ID == "" || order.Date.IsZero() {
		t.Fatalf("server fields not stamped: %+v", order)
	}
	if order.UserID != "alice" {
		t.Fatalf("order not bound to principal: %+v", order)
	}
	// Total and items are recorded as supplied, not recomputed.
	if order.Total != 9.0 || len(order.Items) != 1 || order.Items[0].PriceAtOrder != 4.5 {
		t.Fatalf("client-supplied pricing altered: %+v", order)
	}
}

func TestOrderService_List_FiltersByOwner(t *testing.T) {
	repo := &stubOrderRepo{orders: []domain.Order{
		{ID: "ord-1", UserID: "alice"},
		{ID: "ord-2", UserID: "bob"},
		{ID: "ord-3", UserID: "alice"},
	}}
	svc := NewOrderService(repo, zerolog.Nop())
	ctx := context.Background()

	own, err := svc.List(ctx, domain.Principal{Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", len(own))
	}
	for _, o := range own {
		if o.UserID != "alice" {
			t.Fatalf("foreign order returned: %+v", o)
		}
	}
}

func TestOrderService_List_AdminSeesAll(t *testing.T) {
	repo := &stubOrderRepo{orders: []domain.Order{
		{ID: "ord-1", UserID: "alice"},
		{ID: "ord-2", UserID: "bob"},
	}}
	svc := NewOrderService(repo, zerolog.Nop())

	all, err := svc.List(context.Background(), domain.Principal{Username: "root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected all orders for admin, got %d", len(all))
	}
}
