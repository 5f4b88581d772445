package ports

import (
	"context"

	"github.com/bucketchat/api/internal/core/domain"
)

// MessageRepository persists feed posts in the messages bucket.
type MessageRepository interface {
	Save(ctx context.Context, msg *domain.Message) error
	// List returns up to limit messages. Records that cannot be decoded are
	// skipped; only listing or fetch failures are returned as errors.
	List(ctx context.Context, limit int) ([]*domain.Message, error)
}
