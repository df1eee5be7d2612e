package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/oakmart/storefront-api/internal/api/metrics"
	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// ProductCache abstracts the optional read-through cache (Redis) in front
// of the public catalog listing. A nil cache disables caching entirely.
type ProductCache interface {
	GetList(ctx context.Context) ([]domain.Product, bool)
	SetList(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context)
}

// ProductService implements the product catalog.
type ProductService struct {
	repo  ports.ProductRepository
	cache ProductCache
	log   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ProductCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetList(ctx); ok {
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return products, nil
		}
		metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetList(ctx, products)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	product := &domain.Product{
		ID:          generateID("prd"),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("create").Inc()
	s.invalidate(ctx)
	s.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update merges the set fields of patch into the stored record. A missing
// id returns domain.ErrProductNotFound and leaves the catalog untouched.
func (s *ProductService) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("update").Inc()
	s.invalidate(ctx)
	s.log.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("delete").Inc()
	s.invalidate(ctx)
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
