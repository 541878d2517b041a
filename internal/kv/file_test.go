package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreReadWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewFileStore(dir)

	_, ok, err := store.Get("basketballPlayers")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set("basketballPlayers", "[]"))
	val, ok, err := store.Get("basketballPlayers")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", val)

	data, err := os.ReadFile(SlotPath(store.BasePath(), "basketballPlayers"))
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	_, err = os.Stat(SlotPath(dir, "basketballPlayers") + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestFileStoreSkipsIdenticalWrite(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Set("k", "same"))

	path := SlotPath(dir, "k")
	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("k", "same"))
	after, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

func TestFileStoreErrors(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, _, err := store.Get("../escape")
	require.Error(t, err)
	require.Error(t, store.Set("", "x"))

	var nilStore *FileStore
	_, _, err = nilStore.Get("k")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Equal(t, "", nilStore.BasePath())
}

func TestFileStoreReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the slot file should be makes ReadFile fail.
	require.NoError(t, os.MkdirAll(SlotPath(dir, "k"), 0o755))
	_, _, err := NewFileStore(dir).Get("k")
	require.Error(t, err)
}
