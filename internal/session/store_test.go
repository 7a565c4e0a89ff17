package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func TestStore(t *testing.T) {
	t.Run("missing file loads as logged out", func(t *testing.T) {
		store := tempStore(t)

		sess, err := store.Load()
		require.NoError(t, err)
		assert.False(t, sess.Active())
		assert.Empty(t, store.Token())
	})

	t.Run("save and load round trip all three fields", func(t *testing.T) {
		store := tempStore(t)

		saved := Session{Token: "token-123", Identity: "user@uni.edu", Role: "support"}
		require.NoError(t, store.Save(saved))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
		assert.Equal(t, "token-123", store.Token())
	})

	t.Run("session file is private", func(t *testing.T) {
		store := tempStore(t)
		require.NoError(t, store.Save(Session{Token: "secret"}))

		info, err := os.Stat(store.path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("clear removes all three fields", func(t *testing.T) {
		store := tempStore(t)
		require.NoError(t, store.Save(Session{Token: "t", Identity: "i", Role: "admin"}))

		require.NoError(t, store.Clear())
		assert.Empty(t, store.Token())

		sess, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Session{}, sess)
	})

	t.Run("clear without a session is not an error", func(t *testing.T) {
		store := tempStore(t)
		require.NoError(t, store.Clear())
	})

	t.Run("corrupt file reports a parse error", func(t *testing.T) {
		store := tempStore(t)
		require.NoError(t, os.WriteFile(store.path, []byte("\tnot yaml"), 0o600))

		_, err := store.Load()
		assert.Error(t, err)
	})

	t.Run("save creates the parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "session.yaml")
		store := NewStore(path)

		require.NoError(t, store.Save(Session{Token: "t"}))
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}
