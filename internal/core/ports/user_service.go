package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// CreateUserInput carries the fields for admin user creation.
// Role defaults to domain.RoleUser when empty.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// UserService manages the user directory.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Bootstrap seeds the default admin account when the directory is empty.
	Bootstrap(ctx context.Context) error
}
