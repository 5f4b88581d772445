package ports

import (
	"context"
	"errors"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectExists   = errors.New("object already exists")
)

// ObjectStore is one key-addressed bucket of blobs. Backends serialise
// writes to a single key but offer no cross-key transactions.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	// Put writes data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Create writes data only if key is absent; it returns ErrObjectExists
	// otherwise. The check and the write are atomic.
	Create(ctx context.Context, key string, data []byte) error
	// Get returns ErrObjectNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns at most limit keys starting with prefix, in the order
	// the backend yields them.
	List(ctx context.Context, prefix string, limit int) ([]string, error)
	Ping(ctx context.Context) error
}
