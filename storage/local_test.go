package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/multiform/storage"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("creates base directory", func(t *testing.T) {
		t.Parallel()
		base := filepath.Join(t.TempDir(), "uploads")

		_, err := storage.NewLocalStorage(base, "/files/")
		require.NoError(t, err)

		info, err := os.Stat(base)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty base directory", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewLocalStorage("", "/files/")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrInvalidConfig))
	})
}

func TestLocalStorageSave(t *testing.T) {
	t.Parallel()

	t.Run("writes file and returns metadata", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		data := []byte("hello upload")
		info, err := store.Save(context.Background(), "docs/a.txt", data, "text/plain")
		require.NoError(t, err)

		assert.Equal(t, "a.txt", info.Filename)
		assert.Equal(t, int64(len(data)), info.Size)
		assert.Equal(t, "text/plain", info.ContentType)
		assert.Equal(t, filepath.Join("docs", "a.txt"), info.RelativePath)

		stored, err := os.ReadFile(info.AbsolutePath)
		require.NoError(t, err)
		assert.Equal(t, data, stored)
	})

	t.Run("detects content type when undeclared", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		info, err := store.Save(context.Background(), "doc.pdf", []byte("%PDF-1.7 x"), "")
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", info.ContentType)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		_, err = store.Save(context.Background(), "../escape.txt", []byte("x"), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrInvalidPath))
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = store.Save(ctx, "a.txt", []byte("x"), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		_, err = store.Save(context.Background(), "a.txt", []byte("first"), "text/plain")
		require.NoError(t, err)
		info, err := store.Save(context.Background(), "a.txt", []byte("second"), "text/plain")
		require.NoError(t, err)

		stored, err := os.ReadFile(info.AbsolutePath)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), stored)
	})
}

func TestLocalStorageDeleteExists(t *testing.T) {
	t.Parallel()

	t.Run("delete removes the file", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		_, err = store.Save(context.Background(), "a.txt", []byte("x"), "")
		require.NoError(t, err)
		require.True(t, store.Exists(context.Background(), "a.txt"))

		require.NoError(t, store.Delete(context.Background(), "a.txt"))
		assert.False(t, store.Exists(context.Background(), "a.txt"))
	})

	t.Run("delete missing file", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		err = store.Delete(context.Background(), "missing.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrFileNotFound))
	})

	t.Run("delete refuses directories", func(t *testing.T) {
		t.Parallel()
		store, err := storage.NewLocalStorage(t.TempDir(), "/files/")
		require.NoError(t, err)

		_, err = store.Save(context.Background(), "sub/a.txt", []byte("x"), "")
		require.NoError(t, err)

		err = store.Delete(context.Background(), "sub")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrIsDirectory))
	})
}

func TestLocalStorageURL(t *testing.T) {
	t.Parallel()

	store, err := storage.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	assert.Equal(t, "/files/a.txt", store.URL("a.txt"))
	assert.Equal(t, "/files/docs/a.txt", store.URL("docs/a.txt"))
	assert.Equal(t, "/abs/path.txt", store.URL("/abs/path.txt"))
}
