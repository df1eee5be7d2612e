package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, bcrypt.MinCost, BootstrapConfig{
		AdminUsername: "admin",
		AdminPassword: "admin",
	}, zerolog.Nop())
}

func TestUserService_Create_DefaultsRole(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "alice", Password: "pass"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("id or timestamp not stamped: %+v", user)
	}
	if user.PasswordHash == "pass" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "pass", Role: "superuser",
	}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "bob"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "p1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "p2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Bootstrap_SeedsSingleAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected exactly one seeded account, got %d", len(users))
	}
	if users[0].Username != "admin" || users[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected seed account: %+v", users[0])
	}
}

func TestUserService_Bootstrap_NoopWhenPopulated(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "alice", Password: "pass"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 {
		t.Fatalf("bootstrap seeded into a populated directory: %d users", len(users))
	}
	if users[0].Username != "alice" {
		t.Fatalf("unexpected account: %+v", users[0])
	}
}

func TestUserService_List_NeverExposesHash(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "alice", Password: "pass"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].PasswordHash == "" {
		t.Fatalf("expected stored hash on the domain record: %+v", users)
	}

	// The hash lives on the domain type but must never survive serialization.
	raw, err := json.Marshal(users[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), users[0].PasswordHash) || strings.Contains(string(raw), "password") {
		t.Fatalf("password hash leaked into JSON: %s", raw)
	}
}
