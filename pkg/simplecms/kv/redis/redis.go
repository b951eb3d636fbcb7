package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tendant/simple-cms/pkg/simplecms/kv"
)

const backendName = "redis"

// Config options for the redis backend
type Config struct {
	URL       string // redis://[:password@]host:port/db
	KeyPrefix string // Prepended to every key, e.g. "cms:"
}

// Backend stores each key as a redis string holding the JSON document
type Backend struct {
	client redis.Cmdable
	prefix string
}

// New connects to the redis server described by config.URL and verifies the
// connection with a PING.
func New(ctx context.Context, config Config) (*Backend, *redis.Client, error) {
	if config.URL == "" {
		return nil, nil, errors.New("redis url is required")
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, config.KeyPrefix), client, nil
}

// NewWithClient creates a backend over an existing client
func NewWithClient(client redis.Cmdable, prefix string) *Backend {
	return &Backend{
		client: client,
		prefix: prefix,
	}
}

func (b *Backend) redisKey(key string) string {
	return b.prefix + key
}

// Get returns the document stored under key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: kv.ErrInvalidKey}
	}

	data, err := b.client.Get(ctx, b.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	} else if err != nil {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: err}
	}
	return data, nil
}

// Set replaces the document stored under key. Entries do not expire.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: kv.ErrInvalidKey}
	}

	if err := b.client.Set(ctx, b.redisKey(key), value, 0).Err(); err != nil {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: err}
	}
	return nil
}
