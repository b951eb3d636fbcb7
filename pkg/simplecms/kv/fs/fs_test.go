package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/kv"
	"github.com/tendant/simple-cms/pkg/simplecms/kv/fs"
)

func TestNew(t *testing.T) {
	t.Run("requires base dir", func(t *testing.T) {
		_, err := fs.New(fs.Config{})
		assert.Error(t, err)
	})

	t.Run("creates base dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		backend, err := fs.New(fs.Config{BaseDir: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, backend.BaseDir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestFilesystemBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, err := fs.New(fs.Config{BaseDir: dir})
	require.NoError(t, err)

	t.Run("GetMissing", func(t *testing.T) {
		_, err := backend.Get(ctx, "pages")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "pages", []byte(`[{"id":"1"}]`)))

		data, err := backend.Get(ctx, "pages")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(data))

		onDisk, err := os.ReadFile(filepath.Join(dir, "pages.json"))
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(onDisk))
	})

	t.Run("OverwriteLeavesNoTempFiles", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "pages", []byte(`[]`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"pages.json"}, names)
	})

	t.Run("RejectsPathKeys", func(t *testing.T) {
		for _, key := range []string{"", "..", "a/b", `a\b`} {
			err := backend.Set(ctx, key, []byte(`{}`))
			assert.ErrorIs(t, err, kv.ErrInvalidKey, "key %q", key)

			var storageErr *kv.StorageError
			assert.ErrorAs(t, err, &storageErr)
		}
	})

	t.Run("WorksThroughStore", func(t *testing.T) {
		store := kv.NewStore(backend)
		store.Save(ctx, "menuItems", []string{"a", "b"})
		got := kv.Load(ctx, store, "menuItems", []string(nil))
		assert.Equal(t, []string{"a", "b"}, got)
	})
}
