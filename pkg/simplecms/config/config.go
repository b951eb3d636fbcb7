package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/kv"
	fskv "github.com/tendant/simple-cms/pkg/simplecms/kv/fs"
	memorykv "github.com/tendant/simple-cms/pkg/simplecms/kv/memory"
	pgkv "github.com/tendant/simple-cms/pkg/simplecms/kv/postgres"
	rediskv "github.com/tendant/simple-cms/pkg/simplecms/kv/redis"
	s3kv "github.com/tendant/simple-cms/pkg/simplecms/kv/s3"
)

// DefaultJWTSecret is only accepted outside production
const DefaultJWTSecret = "dev-secret-change-me"

// DefaultMaxUploadBytes caps media uploads at 5 MiB
const DefaultMaxUploadBytes int64 = 5 << 20

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Environment: "development",
		Storage: StorageBackendConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		},
		SeedData:           true,
		JWTSecret:          DefaultJWTSecret,
		AdminUsername:      "admin",
		AdminPassword:      "admin",
		MaxUploadBytes:     DefaultMaxUploadBytes,
		EnableEventLogging: true,
	}
}

// ServerConfig represents configuration for a simple-cms server
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Storage configuration
	Storage   StorageBackendConfig
	KeyPrefix string // Prepended to every collection key by redis and s3 backends
	SeedData  bool   // Fall back to the demo dataset for never-persisted collections

	// Admin surface
	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	MaxUploadBytes int64

	// Server options
	EnableEventLogging bool
}

// StorageBackendConfig represents configuration for the kv backend
type StorageBackendConfig struct {
	Type   string // "memory", "fs", "s3", "redis", "postgres"
	Config map[string]interface{}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.Storage.Type {
	case "memory":
	case "fs":
		if getString(c.Storage.Config, "base_dir", "") == "" {
			return errors.New("base_dir is required for fs storage")
		}
	case "s3":
		if getString(c.Storage.Config, "bucket", "") == "" {
			return errors.New("bucket is required for s3 storage")
		}
	case "redis":
		if getString(c.Storage.Config, "url", "") == "" {
			return errors.New("url is required for redis storage")
		}
	case "postgres":
		if getString(c.Storage.Config, "url", "") == "" {
			return errors.New("url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Environment == "production" && c.JWTSecret == DefaultJWTSecret {
		return errors.New("jwt secret must be changed in production")
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return errors.New("admin username and password are required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}

	return nil
}

// BuildBackend creates the kv backend described by the storage configuration.
// The returned cleanup func releases any connections and is never nil.
func (c *ServerConfig) BuildBackend(ctx context.Context) (kv.Backend, func(), error) {
	noop := func() {}
	config := c.Storage.Config

	switch c.Storage.Type {
	case "memory":
		return memorykv.New(), noop, nil

	case "fs":
		backend, err := fskv.New(fskv.Config{
			BaseDir: getString(config, "base_dir", "./data"),
		})
		if err != nil {
			return nil, noop, err
		}
		return backend, noop, nil

	case "s3":
		backend, err := s3kv.New(s3kv.Config{
			Region:                 getString(config, "region", "us-east-1"),
			Bucket:                 getString(config, "bucket", ""),
			Prefix:                 c.KeyPrefix,
			AccessKeyID:            getString(config, "access_key_id", ""),
			SecretAccessKey:        getString(config, "secret_access_key", ""),
			Endpoint:               getString(config, "endpoint", ""),
			UsePathStyle:           getBool(config, "use_path_style", false),
			EnableSSE:              getBool(config, "enable_sse", false),
			SSEAlgorithm:           getString(config, "sse_algorithm", "AES256"),
			SSEKMSKeyID:            getString(config, "sse_kms_key_id", ""),
			CreateBucketIfNotExist: getBool(config, "create_bucket_if_not_exist", false),
		})
		if err != nil {
			return nil, noop, err
		}
		return backend, noop, nil

	case "redis":
		backend, client, err := rediskv.New(ctx, rediskv.Config{
			URL:       getString(config, "url", ""),
			KeyPrefix: c.KeyPrefix,
		})
		if err != nil {
			return nil, noop, err
		}
		return backend, func() { client.Close() }, nil

	case "postgres":
		pool, err := c.buildPostgresPool(ctx)
		if err != nil {
			return nil, noop, err
		}
		backend := pgkv.NewWithPool(pool, getString(config, "table", pgkv.DefaultTable))
		if err := backend.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return backend, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
}

func (c *ServerConfig) buildPostgresPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(getString(c.Storage.Config, "url", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	schema := getString(c.Storage.Config, "schema", "")
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

// BuildService creates and loads a Service from the server configuration.
// The cleanup func releases backend connections and is never nil.
func (c *ServerConfig) BuildService(ctx context.Context, extra ...simplecms.Option) (simplecms.Service, func(), error) {
	backend, cleanup, err := c.BuildBackend(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to build storage backend %s: %w", c.Storage.Type, err)
	}

	options := []simplecms.Option{
		simplecms.WithKVStore(kv.NewStore(backend)),
	}
	if !c.SeedData {
		options = append(options, simplecms.WithSeed(simplecms.EmptySeed()))
	}
	if c.EnableEventLogging {
		options = append(options, simplecms.WithListener(simplecms.LoggingListener(slog.Default())))
	}
	options = append(options, extra...)

	svc, err := simplecms.New(options...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	svc.Load(ctx)
	return svc, cleanup, nil
}

func getString(config map[string]interface{}, key string, defaultValue string) string {
	if value, exists := config[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getBool(config map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := config[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return b
			}
		}
	}
	return defaultValue
}
