package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
	"github.com/bucketchat/api/internal/infrastructure/db/memstore"
)

// flakyStore wraps a memstore and lets a test inject Get/List failures.
type flakyStore struct {
	*memstore.Store
	getErr  map[string]error
	listErr error
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err, ok := s.getErr[key]; ok {
		return nil, err
	}
	return s.Store.Get(ctx, key)
}

func (s *flakyStore) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Store.List(ctx, prefix, limit)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memstore.New())

	if err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	ok, err := repo.Exists(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("expected alice to exist: %v %v", ok, err)
	}

	user, err := repo.FindByUsername(ctx, "alice")
	if err != nil || user.PasswordHash != "h" {
		t.Fatalf("unexpected user %+v, err %v", user, err)
	}

	if _, err := repo.FindByUsername(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindCorrupt(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_ = store.Put(ctx, "alice", []byte(`{"username":"alice"}`))

	if _, err := NewUserRepository(store).FindByUsername(ctx, "alice"); !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestMessageRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repo := NewMessageRepository(store, zerolog.Nop())

	msg := &domain.Message{ID: "m1", Sender: "alice", CreatedAt: time.UnixMilli(1700000000000).UTC(), Text: "hi"}
	if err := repo.Save(ctx, msg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ok, _ := store.Exists(ctx, "1700000000000-alice"); !ok {
		t.Fatal("expected message under its epoch-millis key")
	}

	msgs, err := repo.List(ctx, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != msg.ID || msgs[0].Text != msg.Text || !msgs[0].CreatedAt.Equal(msg.CreatedAt) {
		t.Fatalf("unexpected list: %+v", msgs)
	}
}

func TestMessageRepository_ListRespectsLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(memstore.New(), zerolog.Nop())

	for i := 0; i < 30; i++ {
		msg := &domain.Message{ID: fmt.Sprint(i), Sender: "bob", CreatedAt: time.UnixMilli(int64(1000 + i)), Text: "x"}
		if err := repo.Save(ctx, msg); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	msgs, err := repo.List(ctx, 25)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 25 {
		t.Fatalf("expected 25, got %d", len(msgs))
	}
}

func TestMessageRepository_ListSkipsCorruptAndVanished(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memstore.New()}
	repo := NewMessageRepository(store, zerolog.Nop())

	_ = repo.Save(ctx, &domain.Message{ID: "ok", Sender: "a", CreatedAt: time.UnixMilli(1), Text: "fine"})
	_ = store.Put(ctx, "2-a", []byte("{not json"))
	_ = store.Put(ctx, "3-a", []byte(`{"id":"v","sender":"a","createdAt":3,"message":"gone"}`))
	store.getErr = map[string]error{"3-a": ports.ErrObjectNotFound}

	msgs, err := repo.List(ctx, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "ok" {
		t.Fatalf("expected only the readable record, got %+v", msgs)
	}
}

func TestMessageRepository_ListFailsOnStoreError(t *testing.T) {
	ctx := context.Background()
	fetchErr := errors.New("connection reset")

	store := &flakyStore{Store: memstore.New()}
	repo := NewMessageRepository(store, zerolog.Nop())
	_ = repo.Save(ctx, &domain.Message{ID: "ok", Sender: "a", CreatedAt: time.UnixMilli(1), Text: "fine"})
	store.getErr = map[string]error{"1-a": fetchErr}

	if _, err := repo.List(ctx, 100); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	listErr := errors.New("access denied")
	store.getErr = nil
	store.listErr = listErr
	if _, err := repo.List(ctx, 100); !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}
