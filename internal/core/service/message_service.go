package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
)

// FeedPageSize caps how many messages a single listing returns.
const FeedPageSize = 100

type MessageService struct {
	repo   ports.MessageRepository
	filter ports.ContentFilter
	logger zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewMessageService(repo ports.MessageRepository, filter ports.ContentFilter, logger zerolog.Logger) *MessageService {
	return &MessageService{
		repo:   repo,
		filter: filter,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Post accepts text from sender, who must be the authenticated caller.
func (s *MessageService) Post(ctx context.Context, sender, text string) (*domain.Message, error) {
	if sender == "" {
		return nil, domain.ErrMissingIdentity
	}
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.filter.IsOffensive(text) {
		return nil, domain.ErrOffensiveContent
	}

	msg := &domain.Message{
		ID:        s.newID(),
		Sender:    sender,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Text:      text,
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	s.logger.Debug().Str("id", msg.ID).Str("sender", sender).Msg("message posted")
	return msg, nil
}

// List returns up to FeedPageSize messages, oldest first.
func (s *MessageService) List(ctx context.Context) ([]*domain.Message, error) {
	msgs, err := s.repo.List(ctx, FeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	slices.SortStableFunc(msgs, func(a, b *domain.Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return msgs, nil
}
