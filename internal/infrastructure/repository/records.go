package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bucketchat/api/internal/core/domain"
)

var recordValidator = validator.New()

// userRecord is the blob stored under the username key. The digest lives
// under "password" to stay readable by existing deployments.
type userRecord struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageRecord struct {
	ID        string `json:"id"        validate:"required"`
	Sender    string `json:"sender"    validate:"required"`
	CreatedAt int64  `json:"createdAt" validate:"required,gt=0"`
	Message   string `json:"message"   validate:"required"`
}

func encodeUser(u *domain.User) ([]byte, error) {
	return json.Marshal(userRecord{Username: u.Username, Password: u.PasswordHash})
}

func decodeUser(key string, data []byte) (*domain.User, error) {
	var rec userRecord
	if err := decodeStrict(data, &rec); err != nil {
		return nil, err
	}
	if rec.Username != key {
		return nil, fmt.Errorf("%w: user record %q stored under %q", domain.ErrCorruptRecord, rec.Username, key)
	}
	return &domain.User{Username: rec.Username, PasswordHash: rec.Password}, nil
}

func encodeMessage(m *domain.Message) ([]byte, error) {
	return json.Marshal(messageRecord{
		ID:        m.ID,
		Sender:    m.Sender,
		CreatedAt: m.CreatedAt.UnixMilli(),
		Message:   m.Text,
	})
}

func decodeMessage(data []byte) (*domain.Message, error) {
	var rec messageRecord
	if err := decodeStrict(data, &rec); err != nil {
		return nil, err
	}
	return &domain.Message{
		ID:        rec.ID,
		Sender:    rec.Sender,
		CreatedAt: time.UnixMilli(rec.CreatedAt).UTC(),
		Text:      rec.Message,
	}, nil
}

// decodeStrict rejects unknown fields, trailing data and missing required
// fields. Every failure wraps domain.ErrCorruptRecord.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", domain.ErrCorruptRecord)
	}
	if err := recordValidator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	return nil
}
