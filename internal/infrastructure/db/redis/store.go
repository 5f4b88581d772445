package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/bucketchat/api/internal/core/ports"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// Store implements ports.ObjectStore as plain string keys under a
// per-bucket namespace: <bucket>:<key>.
type Store struct {
	client redis.Cmdable
	ns     string
}

func NewStore(client redis.Cmdable, bucket string) *Store {
	return &Store{client: client, ns: bucket + ":"}
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, key string, data []byte) error {
	ok, err := s.client.SetNX(ctx, s.key(key), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return ports.ErrObjectExists
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrObjectNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// List walks SCAN until limit distinct keys are collected. SCAN may return
// a key more than once and in no particular order, so keys are
// deduplicated and sorted before being returned.
func (s *Store) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	match := s.ns + escapeGlob(prefix) + "*"

	var (
		keys   []string
		seen   = make(map[string]struct{})
		cursor uint64
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range batch {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, strings.TrimPrefix(k, s.ns))
		}
		cursor = next
		if cursor == 0 || (limit > 0 && len(keys) >= limit) {
			break
		}
	}

	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(k string) string {
	return s.ns + k
}

// escapeGlob quotes the characters SCAN MATCH treats as patterns.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
