// internal/infrastructure/storage/file_test.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	require.NoError(t, s.Set(ctx, KeyCart, []byte(`{"items":[]}`)))

	got, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))

	// A fresh store over the same file sees the value.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err = reopened.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))
}

func TestFileStoreGetMissing(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsInvalidJSON(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Set(context.Background(), KeyAccessToken, []byte("raw-token"))
	assert.Error(t, err, "scalar values must be JSON-encoded by the caller")
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	require.NoError(t, s.Set(ctx, KeyAccessToken, []byte(`"a"`)))
	require.NoError(t, s.Set(ctx, KeyRefreshToken, []byte(`"r"`)))
	require.NoError(t, s.Set(ctx, KeyUser, []byte(`{"id":1}`)))

	require.NoError(t, s.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser, "never-existed"))

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	// The deletions are durable.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = reopened.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err, "corruption recovers by starting empty")

	_, err = s.Get(context.Background(), KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), KeyCart, []byte(`[]`)))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
