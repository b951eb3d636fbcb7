// Package presets provides ready-made Service configurations for common
// setups. Presets remove the wiring boilerplate while staying customizable.
package presets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	"github.com/tendant/simple-cms/pkg/simplecms/kv"
	"github.com/tendant/simple-cms/pkg/simplecms/kv/fs"
	"github.com/tendant/simple-cms/pkg/simplecms/kv/memory"
)

// NewDevelopment creates a loaded service for local development.
//
// Features:
//   - Filesystem storage at ./dev-data/ (persistent across restarts)
//   - Demo content for every collection that was never saved
//   - Change events logged through slog
//
// The cleanup func removes the storage directory.
//
// Example:
//
//	svc, cleanup, err := presets.NewDevelopment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func NewDevelopment(opts ...DevelopmentOption) (simplecms.Service, func(), error) {
	cfg := &devConfig{
		storageDir: "./dev-data",
		seed:       simplecms.DefaultSeed(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backend, err := fs.New(fs.Config{BaseDir: cfg.storageDir})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create filesystem storage: %w", err)
	}

	svc, err := simplecms.New(
		simplecms.WithKVStore(kv.NewStore(backend)),
		simplecms.WithSeed(cfg.seed),
		simplecms.WithListener(simplecms.LoggingListener(nil)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}
	svc.Load(context.Background())

	cleanup := func() {
		os.RemoveAll(cfg.storageDir)
	}
	return svc, cleanup, nil
}

// NewTesting creates a loaded, in-memory service for tests. It starts empty
// unless WithTestFixtures is given.
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    svc := presets.NewTesting(t, presets.WithTestFixtures())
//	    // ...
//	}
func NewTesting(t *testing.T, opts ...TestingOption) simplecms.Service {
	t.Helper()
	cfg := &testConfig{seed: simplecms.EmptySeed()}
	for _, opt := range opts {
		opt(cfg)
	}

	options := []simplecms.Option{
		simplecms.WithKVStore(kv.NewStore(memory.New())),
		simplecms.WithSeed(cfg.seed),
	}
	options = append(options, cfg.extra...)

	svc, err := simplecms.New(options...)
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	svc.Load(context.Background())
	return svc
}

// NewProduction creates a loaded service from the environment, as read by
// config.WithEnv. It refuses in-memory storage and the default JWT secret.
//
// Required Environment Variables:
//   - STORAGE_URL: file://, s3://, redis:// or postgres:// location
//   - JWT_SECRET: token signing secret
//
// The cleanup func releases backend connections.
func NewProduction(ctx context.Context, opts ...config.Option) (simplecms.Service, *config.ServerConfig, func(), error) {
	options := append([]config.Option{config.WithEnv("")}, opts...)
	options = append(options, config.WithEnvironment("production"))

	cfg, err := config.Load(options...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load production config: %w", err)
	}
	if cfg.Storage.Type == "memory" {
		return nil, nil, nil, errors.New("production preset requires persistent storage (set STORAGE_URL)")
	}

	svc, cleanup, err := cfg.BuildService(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return svc, cfg, cleanup, nil
}

// devConfig holds development preset configuration
type devConfig struct {
	storageDir string
	seed       simplecms.Seed
}

// testConfig holds testing preset configuration
type testConfig struct {
	seed  simplecms.Seed
	extra []simplecms.Option
}

// DevelopmentOption is a functional option for NewDevelopment
type DevelopmentOption func(*devConfig)

// WithDevStorage sets the development storage directory
func WithDevStorage(dir string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.storageDir = dir
	}
}

// WithDevSeed replaces the demo content used for unsaved collections
func WithDevSeed(seed simplecms.Seed) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.seed = seed
	}
}

// TestingOption is a functional option for NewTesting
type TestingOption func(*testConfig)

// WithTestFixtures loads the demo newsroom content
func WithTestFixtures() TestingOption {
	return func(cfg *testConfig) {
		cfg.seed = simplecms.DefaultSeed()
	}
}

// WithServiceOptions passes extra options to simplecms.New
func WithServiceOptions(opts ...simplecms.Option) TestingOption {
	return func(cfg *testConfig) {
		cfg.extra = append(cfg.extra, opts...)
	}
}
