package boltdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*TokenStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token_test.db")

	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func TestTokenStore_SaveGetDelete(t *testing.T) {
	store, _ := openTestStore(t)
	defer func() { require.NoError(t, store.Close()) }()

	_, err := store.GetToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.SaveToken("first"))
	require.NoError(t, store.SaveToken("second"))

	got, err := store.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, store.DeleteToken())
	_, err = store.GetToken()
	assert.ErrorIs(t, err, ErrTokenNotFound)

	assert.NoError(t, store.DeleteToken(), "deleting twice is a no-op")
}

func TestTokenStore_SurvivesReopen(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, store.SaveToken("persisted"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	got, err := reopened.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestTokenStore_CloseNil(t *testing.T) {
	var s TokenStore
	assert.NoError(t, s.Close())
}
