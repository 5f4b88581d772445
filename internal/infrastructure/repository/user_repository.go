package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
)

// UserRepository implements ports.UserRepository over the users bucket.
type UserRepository struct {
	store ports.ObjectStore
}

func NewUserRepository(store ports.ObjectStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	ok, err := r.store.Exists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return ok, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := r.store.Create(ctx, user.Username, data); err != nil {
		if errors.Is(err, ports.ErrObjectExists) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	data, err := r.store.Get(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrObjectNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return decodeUser(username, data)
}
