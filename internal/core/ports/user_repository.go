package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// UserRepository defines persistence for the user directory.
// Create must perform its duplicate-username check atomically with the
// write: two concurrent creations of the same username must yield exactly
// one success and one domain.ErrUserExists.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}
