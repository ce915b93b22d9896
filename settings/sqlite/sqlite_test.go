package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketgeek/akismetclient-go/errors"
	"github.com/rocketgeek/akismetclient-go/settings"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "akismet_api_key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "akismet_api_key", "abc123"))
	require.NoError(t, s.Set(ctx, "akismet_api_key", "def456"))

	v, ok, err := s.Get(ctx, "akismet_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def456", v)
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := Open(path)
	require.NoError(t, err)
	sealed, err := settings.NewSealedStore(s, "passphrase")
	require.NoError(t, err)
	require.NoError(t, sealed.Set(ctx, "akismet_api_key", "abc123"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	raw, ok, err := s.Get(ctx, "akismet_api_key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "abc123", raw)

	sealed, err = settings.NewSealedStore(s, "passphrase")
	require.NoError(t, err)
	v, ok, err := sealed.Get(ctx, "akismet_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.True(t, errors.IsConfigError(err))
}
