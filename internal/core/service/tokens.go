package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bucketchat/api/internal/core/domain"
)

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = time.Hour

// SessionClaims is the JWT payload: the public profile under "user" plus
// the registered iat/exp claims.
type SessionClaims struct {
	User domain.Profile `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. A verified token
// is trusted completely; nothing is checked against storage.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs profile with an expiry of ttl from now.
func (s *TokenService) Issue(profile domain.Profile) (string, error) {
	now := s.now()
	claims := SessionClaims{
		User: profile,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Any failure, including a
// malformed token, is reported as domain.ErrUnauthenticated.
func (s *TokenService) Verify(token string) (*domain.Profile, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	profile := claims.User
	return &profile, nil
}
