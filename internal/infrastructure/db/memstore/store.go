// Package memstore is an in-process ObjectStore for local runs and tests.
// Its contents vanish with the process.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bucketchat/api/internal/core/ports"
)

type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = clone(data)
	return nil
}

func (s *Store) Create(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok {
		return ports.ErrObjectExists
	}
	s.objects[key] = clone(data)
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, ports.ErrObjectNotFound
	}
	return clone(data), nil
}

// List returns keys in lexicographic order, like an S3 bucket listing.
func (s *Store) List(_ context.Context, prefix string, limit int) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
