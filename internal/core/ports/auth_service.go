package ports

import (
	"context"

	"github.com/bucketchat/api/internal/core/domain"
)

// AuthService registers and authenticates users, returning session tokens.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenVerifier turns a bearer token back into the profile it was issued for.
type TokenVerifier interface {
	Verify(token string) (*domain.Profile, error)
}
