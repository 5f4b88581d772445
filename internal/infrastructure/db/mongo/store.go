package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bucketchat/api/internal/core/ports"
)

// objectDoc stores one blob per document, keyed by _id. The _id index
// gives Create its uniqueness.
type objectDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements ports.ObjectStore on one collection.
type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database, collection string) *Store {
	return &Store{col: db.Collection(collection)}
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count object: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	doc := objectDoc{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert object: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, key string, data []byte) error {
	doc := objectDoc{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ports.ErrObjectExists
		}
		return fmt.Errorf("insert object: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc objectDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrObjectNotFound
		}
		return nil, fmt.Errorf("find object: %w", err)
	}
	return doc.Data, nil
}

// List returns keys in ascending _id order.
func (s *Store) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.col.Find(ctx, prefixFilter(prefix), opts)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var doc struct {
			Key string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode object key: %w", err)
		}
		keys = append(keys, doc.Key)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return keys, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}

func prefixFilter(prefix string) bson.M {
	if prefix == "" {
		return bson.M{}
	}
	return bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
}
