package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	err := store.SetTokens("access-123", "refresh-456")
	assert.NoError(t, err)

	// A fresh store reading the same file sees the persisted pair.
	again := NewFileStore(path)
	access, refresh = again.Tokens()
	assert.Equal(t, "access-123", access)
	assert.Equal(t, "refresh-456", refresh)
}

func TestFileStoreClearRemovesBothValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	assert.NoError(t, store.SetTokens("a", "r"))

	assert.NoError(t, store.Clear())
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clear store is not an error.
	assert.NoError(t, store.Clear())
}

func TestFileStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store := NewFileStore(path)
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}
