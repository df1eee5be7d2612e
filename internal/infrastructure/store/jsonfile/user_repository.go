package jsonfile

import (
	"context"
	"time"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

const usersCollection = "users"

// userRecord is the on-disk shape of a user. It exists because
// domain.User deliberately refuses to serialize its password hash.
type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}

// UserRepository persists users in the "users" collection.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	recs, err := Read[userRecord](r.store, usersCollection)
	if err != nil {
		return nil, err
	}
	// Exact-match lookup, no case normalization: "Alice" and "alice" are
	// distinct identities.
	for _, rec := range recs {
		if rec.Username == username {
			u := rec.toDomain()
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a user. The duplicate check runs inside the same locked
// update as the write, so concurrent creations of one username cannot both
// pass it.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := Update(r.store, usersCollection, func(recs []userRecord) ([]userRecord, error) {
		for _, rec := range recs {
			if rec.Username == user.Username {
				return nil, domain.ErrUserExists
			}
		}
		return append(recs, toUserRecord(user)), nil
	})
	if err != nil {
		return nil, err
	}
	created := *user
	return &created, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	recs, err := Read[userRecord](r.store, usersCollection)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	recs, err := Read[userRecord](r.store, usersCollection)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
