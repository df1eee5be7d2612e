package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oakmart/storefront-api/internal/api/metrics"
	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// BootstrapConfig is the default admin credential seeded into an empty
// directory at startup.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// UserService implements the user directory.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
	bootstrap  BootstrapConfig
	log        zerolog.Logger
}

func NewUserService(repo ports.UserRepository, bcryptCost int, bootstrap BootstrapConfig, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, bcryptCost: bcryptCost, bootstrap: bootstrap, log: log}
}

// Create adds an account. Role defaults to "user" when empty; a duplicate
// username yields domain.ErrUserExists. The repository performs the
// duplicate check atomically with the write.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           generateID("usr"),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Bootstrap seeds one admin account when the directory is empty. The
// credential comes from configuration and defaults to admin/admin; keeping
// the default in a real deployment is a security hole, so its use is logged
// loudly rather than hidden.
func (s *UserService) Bootstrap(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := s.Create(ctx, ports.CreateUserInput{
		Username: s.bootstrap.AdminUsername,
		Password: s.bootstrap.AdminPassword,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	s.log.Warn().
		Str("username", s.bootstrap.AdminUsername).
		Msg("seeded default admin account; rotate this credential before exposing the service")
	return nil
}
