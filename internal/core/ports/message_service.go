package ports

import (
	"context"

	"github.com/bucketchat/api/internal/core/domain"
)

// MessageService posts to and reads the global feed. The sender always
// comes from the caller's verified token, never from the request body.
type MessageService interface {
	Post(ctx context.Context, sender, text string) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
}
