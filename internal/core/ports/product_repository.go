package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// ProductPatch carries a partial update. Nil fields are left untouched;
// set fields are merged shallowly into the stored record.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Image       *string
}

// ProductRepository defines persistence for the product catalog.
// Update and Delete return domain.ErrProductNotFound when id is absent and
// must leave the collection unchanged in that case.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
