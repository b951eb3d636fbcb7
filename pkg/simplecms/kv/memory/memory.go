package memory

import (
	"context"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms/kv"
)

// Backend is an in-memory implementation of the kv.Backend interface
type Backend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates a new in-memory backend
func New() *Backend {
	return &Backend{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the bytes stored under key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.entries[key]
	if !exists {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of value under key
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	data := make([]byte, len(value))
	copy(data, value)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[key] = data
	return nil
}
