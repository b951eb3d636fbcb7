package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms/kv"
)

const backendName = "fs"

// Backend is a filesystem implementation of the kv.Backend interface.
// Each key is stored as <key>.json directly under the base directory.
type Backend struct {
	mu      sync.RWMutex
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing documents
}

// New creates a new filesystem backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir: config.BaseDir,
	}, nil
}

// BaseDir returns the directory holding the documents
func (b *Backend) BaseDir() string {
	return b.baseDir
}

func (b *Backend) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", kv.ErrInvalidKey
	}
	return filepath.Join(b.baseDir, key+".json"), nil
}

// Get reads the document stored under key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: err}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, kv.ErrNotFound
	} else if err != nil {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: err}
	}
	return data, nil
}

// Set replaces the document stored under key. The write goes to a temporary
// file first and is renamed into place so readers never see a partial file.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	p, err := b.path(key)
	if err != nil {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.baseDir, key+".*.tmp")
	if err != nil {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: fmt.Errorf("failed to create file: %w", err)}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: fmt.Errorf("failed to write file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: fmt.Errorf("failed to close file: %w", err)}
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: fmt.Errorf("failed to rename file: %w", err)}
	}
	return nil
}
