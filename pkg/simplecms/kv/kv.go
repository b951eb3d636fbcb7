// Package kv provides the durable key-value layer used by the content store.
//
// Values are stored as JSON documents under short string keys. Reads and
// writes never surface errors to callers: a missing key, a corrupt document
// or an unreachable backend all degrade to the caller-supplied fallback on
// read and to a logged no-op on write.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNotFound is returned by a Backend when the key has never been written.
	ErrNotFound = errors.New("key not found")

	// ErrUnavailable indicates the backing medium cannot be used.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInvalidKey indicates a key the backend cannot address.
	ErrInvalidKey = errors.New("invalid key")
)

// Backend is the raw byte-level contract implemented by each storage medium.
type Backend interface {
	// Get returns the bytes stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the bytes stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// StorageError represents a failed backend operation
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store wraps a Backend with JSON encoding and failure absorption.
// A Store with a nil backend behaves as permanently unavailable storage.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the logger used to report absorbed failures
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store over backend. backend may be nil.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether the store has a backend to talk to.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// Load reads the JSON document stored under key and decodes it into a T.
// fallback is returned when the key is absent, the backend is unavailable
// or fails, or the stored document does not decode as a T.
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	if !s.Available() {
		return fallback
	}

	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("kv load failed, using fallback", "key", key, "err", err)
		}
		return fallback
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("kv document corrupt, using fallback", "key", key, "err", err)
		return fallback
	}
	return value
}

// Save encodes value as JSON and writes it under key. Failures are logged
// and otherwise ignored.
func (s *Store) Save(ctx context.Context, key string, value any) {
	if !s.Available() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("kv encode failed, write skipped", "key", key, "err", err)
		return
	}

	if err := s.backend.Set(ctx, key, data); err != nil {
		s.logger.Warn("kv save failed", "key", key, "err", err)
	}
}
