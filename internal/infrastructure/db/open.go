// Package db opens the object store backend selected by configuration and
// hands back one ports.ObjectStore per logical bucket.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bucketchat/api/internal/core/ports"
	"github.com/bucketchat/api/internal/infrastructure/db/memstore"
	"github.com/bucketchat/api/internal/infrastructure/db/mongo"
	"github.com/bucketchat/api/internal/infrastructure/db/redis"
	"github.com/bucketchat/api/internal/infrastructure/db/s3"
	"github.com/bucketchat/api/internal/pkg/config"
)

// Stores holds the users and messages buckets of one backend.
type Stores struct {
	Users    ports.ObjectStore
	Messages ports.ObjectStore

	closeFn func(context.Context) error
}

// Close releases the backend connection, if any.
func (s *Stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the backend named by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	users, messages := cfg.Store.UsersBucket, cfg.Store.MessagesBucket

	switch cfg.Store.Driver {
	case config.DriverS3:
		client, err := s3.NewClient(ctx, s3.Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("region", cfg.S3.Region).Str("endpoint", cfg.S3.Endpoint).Msg("using s3 object store")
		return &Stores{
			Users:    s3.NewStore(client, users),
			Messages: s3.NewStore(client, messages),
		}, nil

	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo object store")
		return &Stores{
			Users:    mongo.NewStore(database, users),
			Messages: mongo.NewStore(database, messages),
			closeFn:  client.Disconnect,
		}, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis object store")
		return &Stores{
			Users:    redis.NewStore(client, users),
			Messages: redis.NewStore(client, messages),
			closeFn:  func(context.Context) error { return client.Close() },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory object store, data is lost on exit")
		return &Stores{Users: memstore.New(), Messages: memstore.New()}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
