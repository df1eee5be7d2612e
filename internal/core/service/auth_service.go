package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakmart/storefront-api/internal/api/metrics"
	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// AuthService implements credential verification and session tokens.
//
// Token verification is stateless: it checks signature and expiry only and
// never consults the user directory. A token issued for a since-deleted or
// demoted account stays valid until it expires (at most tokenTTL).
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login verifies the password for username and issues a token. Unknown
// username and wrong password collapse into the same error so the response
// never reveals which one was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(domain.Principal{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Role: user.Role, Username: user.Username}, nil
}

// IssueToken signs a token carrying the principal's identity and an expiry.
func (s *AuthService) IssueToken(principal domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"id":       principal.ID,
		"username": principal.Username,
		"role":     principal.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks signature, algorithm and expiry, and returns the
// embedded principal. Any failure maps to domain.ErrInvalidToken.
func (s *AuthService) VerifyToken(token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{ID: id, Username: username, Role: role}, nil
}

// HashPassword produces a salted bcrypt digest. cost <= 0 selects the
// library default.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
