package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "coll")
	coll := sampleCollection(t)

	require.NoError(t, NewStore(dir, nil).Save(&coll))

	for _, path := range []string{
		filepath.Join(dir, "requests", "create user"),
		filepath.Join(dir, "requests", "list users"),
		filepath.Join(dir, "environments", "dev"),
		filepath.Join(dir, "environments", "prod"),
	} {
		assert.FileExists(t, path)
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	coll := sampleCollection(t)
	store := NewStore(dir, nil)

	require.NoError(t, store.Save(&coll))
	got, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, dir, got.SaveLocation)
	assert.ElementsMatch(t, coll.Requests, got.Requests)
	assert.ElementsMatch(t, coll.Environments, got.Environments)
}

func TestStore_LoadSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	coll := sampleCollection(t)
	store := NewStore(dir, nil)
	require.NoError(t, store.Save(&coll))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "requests", "junk"), []byte("not json"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "requests", "nested"), 0755))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, got.Requests, 2)
}

func TestStore_LoadFailsWithoutSubdirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "requests"), 0755))

	_, err := NewStore(dir, nil).Load()

	require.Error(t, err)
	assert.True(t, errdef.Is(err, errdef.CodeFilesystem))
}

func TestStore_SaveContinuesPastFailedFile(t *testing.T) {
	dir := t.TempDir()
	// A directory where a request file should go makes that single write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "requests", "list users"), 0755))
	coll := sampleCollection(t)

	require.NoError(t, NewStore(dir, nil).Save(&coll))

	assert.FileExists(t, filepath.Join(dir, "requests", "create user"))
	assert.FileExists(t, filepath.Join(dir, "environments", "dev"))
}

func TestStore_SaveFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	coll := sampleCollection(t)
	err := NewStore(filepath.Join(blocker, "coll"), nil).Save(&coll)

	require.Error(t, err)
	assert.True(t, errdef.Is(err, errdef.CodeFilesystem))
}

func TestStore_LoadOrCreate(t *testing.T) {
	t.Run("creates and persists default collection", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "fresh")
		store := NewStore(dir, nil)
		require.False(t, store.Exists())

		coll, err := store.LoadOrCreate()
		require.NoError(t, err)
		assert.Len(t, coll.Requests, 1)
		assert.Len(t, coll.Environments, 1)
		assert.True(t, store.Exists())

		reread, err := store.Load()
		require.NoError(t, err)
		assert.Len(t, reread.Requests, 1)
		assert.Len(t, reread.Environments, 1)
	})

	t.Run("loads existing collection", func(t *testing.T) {
		dir := t.TempDir()
		coll := sampleCollection(t)
		store := NewStore(dir, nil)
		require.NoError(t, store.Save(&coll))

		got, err := store.LoadOrCreate()
		require.NoError(t, err)
		assert.Len(t, got.Requests, 2)
	})
}

func TestStore_LoadUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	coll := sampleCollection(t)
	store := NewStore(dir, nil)
	require.NoError(t, store.Save(&coll))

	envDir := filepath.Join(dir, "environments")
	require.NoError(t, os.Chmod(envDir, 0000))
	t.Cleanup(func() { _ = os.Chmod(envDir, 0755) })

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "environments"))
}
