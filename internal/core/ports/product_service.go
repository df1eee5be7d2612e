package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// CreateProductInput carries the fields for a new catalog entry.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Image       string
}

// ProductService manages the product catalog.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
