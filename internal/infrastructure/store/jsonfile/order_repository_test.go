package jsonfile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

func testOrder(id, username string) *domain.Order {
	return &domain.Order{
		ID:     id,
		Date:   time.Now().UTC(),
		UserID: username,
		Items:  []domain.OrderItem{{ProductRef: "prd-1", Quantity: 1, PriceAtOrder: 5}},
		Total:  5,
	}
}

func TestOrderRepository_ListByUser(t *testing.T) {
	repo := NewOrderRepository(newTestStore(t))
	ctx := context.Background()

	_ = repo.Append(ctx, testOrder("ord-1", "alice"))
	_ = repo.Append(ctx, testOrder("ord-2", "bob"))
	_ = repo.Append(ctx, testOrder("ord-3", "alice"))

	own, err := repo.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", len(own))
	}
	for _, o := range own {
		if o.UserID != "alice" {
			t.Fatalf("foreign order leaked: %+v", o)
		}
	}

	all, _ := repo.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 orders total, got %d", len(all))
	}
}

func TestOrderRepository_ConcurrentAppends(t *testing.T) {
	repo := NewOrderRepository(newTestStore(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := repo.Append(ctx, testOrder("ord-a", "alice")); err != nil {
			t.Errorf("append a: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := repo.Append(ctx, testOrder("ord-b", "bob")); err != nil {
			t.Errorf("append b: %v", err)
		}
	}()
	wg.Wait()

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both concurrent orders persisted, got %d", len(all))
	}
}
