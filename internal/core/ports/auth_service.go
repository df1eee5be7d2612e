package ports

import (
	"context"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string
	Role     string
	Username string
}

// AuthService authenticates credentials and manages session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	IssueToken(principal domain.Principal) (string, error)
	VerifyToken(token string) (*domain.Principal, error)
}

// TokenVerifier is the narrow slice of AuthService the HTTP middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Principal, error)
}
