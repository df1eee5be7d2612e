package jsonfile

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

const productsCollection = "products"

// ProductRepository persists products in the "products" collection.
type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return Read[domain.Product](r.store, productsCollection)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	recs, err := Read[domain.Product](r.store, productsCollection)
	if err != nil {
		return nil, err
	}
	for _, p := range recs {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return Update(r.store, productsCollection, func(recs []domain.Product) ([]domain.Product, error) {
		return append(recs, *product), nil
	})
}

// Update merges the patch into the stored record under the collection lock.
// A missing id aborts before anything is written.
func (r *ProductRepository) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	var updated domain.Product
	err := Update(r.store, productsCollection, func(recs []domain.Product) ([]domain.Product, error) {
		for i := range recs {
			if recs[i].ID != id {
				continue
			}
			if patch.Name != nil {
				recs[i].Name = *patch.Name
			}
			if patch.Price != nil {
				recs[i].Price = *patch.Price
			}
			if patch.Description != nil {
				recs[i].Description = *patch.Description
			}
			if patch.Image != nil {
				recs[i].Image = *patch.Image
			}
			updated = recs[i]
			return recs, nil
		}
		return nil, domain.ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return Update(r.store, productsCollection, func(recs []domain.Product) ([]domain.Product, error) {
		for i := range recs {
			if recs[i].ID == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, domain.ErrProductNotFound
	})
}
