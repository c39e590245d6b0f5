package repository

import (
	"context"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/persistence"
)

// UserRepository persists the whole user collection as one blob. Every
// mutation reads the full collection, changes it in memory and writes it
// back; there is no per-record update.
type UserRepository interface {
	List(ctx context.Context) []domain.User
	GetByID(ctx context.Context, id string) (*domain.User, bool)
	Save(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	store persistence.Store
}

// NewUserRepository returns a blob-store backed implementation.
func NewUserRepository(store persistence.Store) UserRepository {
	return &userRepository{store: store}
}

// List returns all users in stored order.
func (r *userRepository) List(ctx context.Context) []domain.User {
	return loadCollection[domain.User](ctx, r.store, usersKey)
}

// GetByID scans the collection for the user. Absence is reported as a
// false second return, never an error.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, bool) {
	for _, user := range r.List(ctx) {
		if user.ID == id {
			u := user
			return &u, true
		}
	}
	return nil, false
}

// Save upserts the user by id and rewrites the collection.
func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	users := r.List(ctx)
	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, *user)
	}
	return saveCollection(ctx, r.store, usersKey, users)
}
