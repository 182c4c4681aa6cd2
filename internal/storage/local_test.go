package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (Storage, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewLocal(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "storage")
		_, err := NewLocal(dir)
		require.NoError(t, err)

		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		_, err := NewLocal("")
		assert.Error(t, err)
	})
}

func TestLocalPutGet(t *testing.T) {
	store, dir := newTestLocal(t)
	ctx := context.Background()

	// Binary content including NUL and high bytes
	content := []byte{0x00, 0x01, 'a', 'b', 0xFF, 0xFE, '\n', 0x7F}

	info, err := store.Put(ctx, "blob.bin", bytes.NewReader(content), PutOptions{
		Size:        int64(len(content)),
		ContentType: "application/octet-stream",
	})
	require.NoError(t, err)
	assert.Equal(t, "blob.bin", info.Name)
	assert.Equal(t, int64(len(content)), info.Size)

	// No staging leftovers once the rename completed
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), stagingPrefix), "staging file left behind: %s", e.Name())
	}

	rc, got, err := store.Get(ctx, "blob.bin")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, int64(len(content)), got.Size)

	read, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestLocalPutOverwrite(t *testing.T) {
	store, _ := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "note.txt", strings.NewReader("old"), PutOptions{Size: 3})
	require.NoError(t, err)
	_, err = store.Put(ctx, "note.txt", strings.NewReader("new content"), PutOptions{Size: 11})
	require.NoError(t, err)

	rc, info, err := store.Get(ctx, "note.txt")
	require.NoError(t, err)
	defer rc.Close()

	read, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(read))
	assert.Equal(t, int64(11), info.Size)

	files, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLocalGetMissing(t *testing.T) {
	store, _ := newTestLocal(t)

	_, _, err := store.Get(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalGetDirectory(t *testing.T) {
	store, dir := newTestLocal(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	_, _, err := store.Get(context.Background(), "subdir")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalList(t *testing.T) {
	store, dir := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "a.txt", strings.NewReader("a"), PutOptions{Size: 1})
	require.NoError(t, err)
	_, err = store.Put(ctx, "b.txt", strings.NewReader("bb"), PutOptions{Size: 2})
	require.NoError(t, err)

	// Sub-directories and in-flight staging files must not appear
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, stagingPrefix+"123"), []byte("partial"), 0o600))

	files, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
}

func TestLocalListEmpty(t *testing.T) {
	store, _ := newTestLocal(t)

	files, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Len(t, files, 0)
}

func TestLocalDelete(t *testing.T) {
	store, dir := newTestLocal(t)
	ctx := context.Background()

	t.Run("removes existing file", func(t *testing.T) {
		_, err := store.Put(ctx, "gone.txt", strings.NewReader("x"), PutOptions{Size: 1})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, "gone.txt"))

		files, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, files, 0)
	})

	t.Run("missing file", func(t *testing.T) {
		err := store.Delete(ctx, "never-there.txt")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory is not deletable", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "keep"), 0o755))

		err := store.Delete(ctx, "keep")
		assert.ErrorIs(t, err, os.ErrNotExist)

		_, statErr := os.Stat(filepath.Join(dir, "keep"))
		assert.NoError(t, statErr)
	})
}

func TestLocalPing(t *testing.T) {
	store, dir := newTestLocal(t)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, store.Ping(ctx))
}
