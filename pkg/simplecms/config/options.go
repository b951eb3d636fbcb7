package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithMemoryStorage keeps collections in process memory only
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.Storage = StorageBackendConfig{Type: "memory", Config: map[string]interface{}{}}
		return nil
	}
}

// WithFilesystemStorage stores one JSON file per collection under baseDir
func WithFilesystemStorage(baseDir string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		c.Storage = StorageBackendConfig{
			Type:   "fs",
			Config: map[string]interface{}{"base_dir": baseDir},
		}
		return nil
	}
}

// WithS3Storage stores one object per collection in bucket
func WithS3Storage(bucket, region string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if region == "" {
			region = "us-east-1"
		}
		c.Storage = StorageBackendConfig{
			Type: "s3",
			Config: map[string]interface{}{
				"bucket": bucket,
				"region": region,
			},
		}
		return nil
	}
}

// WithS3Credentials sets static credentials on the configured S3 storage
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		if c.Storage.Type != "s3" {
			return fmt.Errorf("S3 credentials require s3 storage, got %s", c.Storage.Type)
		}
		c.Storage.Config["access_key_id"] = accessKeyID
		c.Storage.Config["secret_access_key"] = secretAccessKey
		return nil
	}
}

// WithS3Endpoint points the configured S3 storage at an S3-compatible service
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		if c.Storage.Type != "s3" {
			return fmt.Errorf("S3 endpoint requires s3 storage, got %s", c.Storage.Type)
		}
		c.Storage.Config["endpoint"] = endpoint
		c.Storage.Config["use_path_style"] = usePathStyle
		return nil
	}
}

// WithRedisStorage stores one redis string per collection
func WithRedisStorage(url string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("redis url cannot be empty")
		}
		c.Storage = StorageBackendConfig{
			Type:   "redis",
			Config: map[string]interface{}{"url": url},
		}
		return nil
	}
}

// WithPostgresStorage stores one row per collection. schema may be empty.
func WithPostgresStorage(url, schema string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.Storage = StorageBackendConfig{
			Type: "postgres",
			Config: map[string]interface{}{
				"url":    url,
				"schema": schema,
			},
		}
		return nil
	}
}

// WithKeyPrefix namespaces collection keys in shared redis or s3 storage
func WithKeyPrefix(prefix string) Option {
	return func(c *ServerConfig) error {
		c.KeyPrefix = prefix
		return nil
	}
}

// WithSeedData toggles the demo dataset fallback
func WithSeedData(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.SeedData = enabled
		return nil
	}
}

// WithJWTSecret sets the HMAC secret used to sign admin tokens
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		if secret == "" {
			return fmt.Errorf("jwt secret cannot be empty")
		}
		c.JWTSecret = secret
		return nil
	}
}

// WithAdmin sets the credentials of the built-in admin user
func WithAdmin(username, password string) Option {
	return func(c *ServerConfig) error {
		if username == "" || password == "" {
			return fmt.Errorf("admin username and password cannot be empty")
		}
		c.AdminUsername = username
		c.AdminPassword = password
		return nil
	}
}

// WithMaxUploadBytes caps accepted media size
func WithMaxUploadBytes(n int64) Option {
	return func(c *ServerConfig) error {
		if n <= 0 {
			return fmt.Errorf("max upload bytes must be positive")
		}
		c.MaxUploadBytes = n
		return nil
	}
}

// WithEventLogging enables or disables change logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
