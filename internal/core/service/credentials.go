package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/bucketchat/api/internal/core/domain"
)

// CredentialService derives and checks password digests. It never reads
// storage; existence checks belong to the caller.
type CredentialService struct {
	secret []byte
}

func NewCredentialService(secret string) *CredentialService {
	return &CredentialService{secret: []byte(secret)}
}

// Hash returns the hex HMAC-SHA256 of password keyed with the server secret.
// The same input always yields the same digest.
func (s *CredentialService) Hash(password string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// Register builds the record to store for a new user.
func (s *CredentialService) Register(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	return &domain.User{
		Username:     username,
		PasswordHash: s.Hash(password),
	}, nil
}

// Verify reports whether candidate hashes to storedHash.
func (s *CredentialService) Verify(candidate, storedHash string) bool {
	return hmac.Equal([]byte(s.Hash(candidate)), []byte(storedHash))
}
