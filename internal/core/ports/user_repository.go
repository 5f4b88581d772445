package ports

import (
	"context"

	"github.com/bucketchat/api/internal/core/domain"
)

// UserRepository persists credential records in the users bucket.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	// Create returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername returns domain.ErrUserNotFound or domain.ErrCorruptRecord.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
