package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/bucketchat/api/internal/core/ports"
)

// fakeAPI is a single-bucket in-memory stand-in for *s3.Client.
type fakeAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
	failAll error
	lastMax int32
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: make(map[string][]byte)}
}

func (f *fakeAPI) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeAPI) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if aws.ToString(in.IfNoneMatch) == "*" {
		if _, ok := f.objects[*in.Key]; ok {
			return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
		}
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMax = aws.ToInt32(in.MaxKeys)

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if int32(len(keys)) > f.lastMax {
		keys = keys[:f.lastMax]
	}

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestStore_PutGetExists(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeAPI(), "users")

	ok, err := store.Exists(ctx, "alice")
	if err != nil || ok {
		t.Fatalf("expected absent, got %v %v", ok, err)
	}
	if _, err := store.Get(ctx, "alice"); !errors.Is(err, ports.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}

	if err := store.Put(ctx, "alice", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "alice", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := store.Get(ctx, "alice")
	if err != nil || string(data) != `{"a":2}` {
		t.Fatalf("unexpected get %q %v", data, err)
	}
	if ok, _ := store.Exists(ctx, "alice"); !ok {
		t.Fatal("expected present")
	}
}

func TestStore_CreateIsConditional(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeAPI(), "users")

	if err := store.Create(ctx, "bob", []byte("first")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, "bob", []byte("second")); !errors.Is(err, ports.ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists, got %v", err)
	}

	data, _ := store.Get(ctx, "bob")
	if string(data) != "first" {
		t.Fatalf("original object must survive, got %q", data)
	}
}

func TestStore_ListLimit(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := NewStore(api, "messages")

	for _, k := range []string{"3-c", "1-a", "2-b"} {
		_ = store.Put(ctx, k, []byte("x"))
	}

	keys, err := store.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "1-a" || keys[1] != "2-b" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if _, err := store.List(ctx, "", 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.lastMax != maxListKeys {
		t.Fatalf("expected default MaxKeys %d, got %d", maxListKeys, api.lastMax)
	}
}

func TestStore_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	boom := &smithy.GenericAPIError{Code: "AccessDenied"}
	api := newFakeAPI()
	api.failAll = boom
	store := NewStore(api, "users")

	if _, err := store.Exists(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("Exists: expected wrapped error, got %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, boom) || errors.Is(err, ports.ErrObjectNotFound) {
		t.Fatalf("Get: expected wrapped error, got %v", err)
	}
	if err := store.Create(ctx, "k", nil); !errors.Is(err, boom) || errors.Is(err, ports.ErrObjectExists) {
		t.Fatalf("Create: expected wrapped error, got %v", err)
	}
	if _, err := store.List(ctx, "", 10); !errors.Is(err, boom) {
		t.Fatalf("List: expected wrapped error, got %v", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, boom) {
		t.Fatalf("Ping: expected wrapped error, got %v", err)
	}
}

func TestIsPreconditionFailed(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"precondition": {&smithy.GenericAPIError{Code: "PreconditionFailed"}, true},
		"conflict":     {&smithy.GenericAPIError{Code: "ConditionalRequestConflict"}, true},
		"other":        {&smithy.GenericAPIError{Code: "AccessDenied"}, false},
		"plain":        {errors.New("x"), false},
	}
	for name, c := range cases {
		if got := isPreconditionFailed(c.err); got != c.want {
			t.Errorf("%s: got %v, want %v", name, got, c.want)
		}
	}
}
