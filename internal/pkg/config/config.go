package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverS3     = "s3"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	TokenSecret        string `env:"WEB_TOKEN_SECRET,     required"`
	PasswordHashSecret string `env:"PASSWORD_HASH_SECRET, required"`

	Store StoreConfig
	S3    S3Config
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	Driver         string `env:"STORE_DRIVER,    default=s3"`
	UsersBucket    string `env:"USERS_BUCKET,    default=users"`
	MessagesBucket string `env:"MESSAGES_BUCKET, default=messages"`
}

type S3Config struct {
	Region          string `env:"S3_REGION,      default=us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bucketchat"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates the store settings.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case DriverS3, DriverMongo, DriverRedis, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Store.UsersBucket == cfg.Store.MessagesBucket {
		return nil, fmt.Errorf("USERS_BUCKET and MESSAGES_BUCKET must differ, both are %q", cfg.Store.UsersBucket)
	}
	return &cfg, nil
}
