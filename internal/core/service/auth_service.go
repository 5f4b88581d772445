package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
)

// AuthService implements signup and login on top of the users bucket.
type AuthService struct {
	repo        ports.UserRepository
	credentials *CredentialService
	tokens      *TokenService
	filter      ports.ContentFilter
	logger      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	credentials *CredentialService,
	tokens *TokenService,
	filter ports.ContentFilter,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		credentials: credentials,
		tokens:      tokens,
		filter:      filter,
		logger:      logger,
	}
}

// Signup stores a new user and returns a session token for it.
//
// The existence check gives the common conflict a cheap answer; the write
// itself is a create-if-absent, so two racing signups for one username
// cannot both succeed.
func (s *AuthService) Signup(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}
	if s.filter.IsOffensive(username) {
		return "", domain.ErrOffensiveContent
	}

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	if exists {
		return "", domain.ErrUserExists
	}

	user, err := s.credentials.Register(username, password)
	if err != nil {
		return "", err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.logger.Warn().Str("username", username).Msg("signup lost create race")
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("signup: %w", err)
	}

	token, err := s.tokens.Issue(user.Profile())
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("user signed up")
	return token, nil
}

// Login checks the password against the stored digest and returns a
// session token whose claim is the user's public profile.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.credentials.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Profile())
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}
