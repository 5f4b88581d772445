package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
	"github.com/bucketchat/api/internal/pkg/metrics"
)

// fetchConcurrency bounds the parallel object fetches of one listing.
const fetchConcurrency = 16

// MessageRepository implements ports.MessageRepository over the messages bucket.
type MessageRepository struct {
	store ports.ObjectStore
	log   zerolog.Logger
}

func NewMessageRepository(store ports.ObjectStore, log zerolog.Logger) *MessageRepository {
	return &MessageRepository{store: store, log: log}
}

// Save writes msg under its "<epoch-millis>-<sender>" key.
func (r *MessageRepository) Save(ctx context.Context, msg *domain.Message) error {
	data, err := encodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := r.store.Put(ctx, msg.StorageKey(), data); err != nil {
		return fmt.Errorf("put message: %w", err)
	}
	return nil
}

// List fetches up to limit listed records concurrently. Corrupt records and
// records deleted between listing and fetching are skipped; any other store
// error fails the whole listing.
func (r *MessageRepository) List(ctx context.Context, limit int) ([]*domain.Message, error) {
	start := time.Now()
	defer func() { metrics.FeedListDuration.Observe(time.Since(start).Seconds()) }()

	keys, err := r.store.List(ctx, "", limit)
	if err != nil {
		return nil, fmt.Errorf("list message keys: %w", err)
	}

	results := make([]*domain.Message, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			data, err := r.store.Get(gctx, key)
			if err != nil {
				if errors.Is(err, ports.ErrObjectNotFound) {
					metrics.StoredRecordsDroppedTotal.WithLabelValues("vanished").Inc()
					return nil
				}
				return fmt.Errorf("get message %q: %w", key, err)
			}

			msg, err := decodeMessage(data)
			if err != nil {
				r.log.Warn().Err(err).Str("key", key).Msg("skipping unreadable message record")
				metrics.StoredRecordsDroppedTotal.WithLabelValues("corrupt").Inc()
				return nil
			}
			results[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	msgs := make([]*domain.Message, 0, len(results))
	for _, m := range results {
		if m != nil {
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}
