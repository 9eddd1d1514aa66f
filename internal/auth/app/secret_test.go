package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSigningSecret(t *testing.T) {
	long := strings.Repeat("s", MinSecretLength)

	t.Run("from value", func(t *testing.T) {
		secret, generated, err := LoadSigningSecret(Config{Env: "prod", JWTSecret: long})
		require.NoError(t, err)
		require.False(t, generated)
		require.Equal(t, []byte(long), secret)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(path, []byte(long+"\n"), 0o600))

		secret, _, err := LoadSigningSecret(Config{Env: "prod", JWTSecretFile: path})
		require.NoError(t, err)
		require.Equal(t, []byte(long), secret)
	})

	t.Run("value wins over file", func(t *testing.T) {
		secret, _, err := LoadSigningSecret(Config{Env: "prod", JWTSecret: long, JWTSecretFile: "/does/not/exist"})
		require.NoError(t, err)
		require.Equal(t, []byte(long), secret)
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, _, err := LoadSigningSecret(Config{Env: "prod", JWTSecretFile: filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)
	})

	t.Run("generated in dev", func(t *testing.T) {
		a, generated, err := LoadSigningSecret(Config{Env: "dev"})
		require.NoError(t, err)
		require.True(t, generated)
		require.GreaterOrEqual(t, len(a), MinSecretLength)

		b, _, err := LoadSigningSecret(Config{Env: "dev"})
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("short secret allowed in dev", func(t *testing.T) {
		secret, _, err := LoadSigningSecret(Config{Env: "dev", JWTSecret: "short"})
		require.NoError(t, err)
		require.Equal(t, []byte("short"), secret)
	})

	t.Run("missing outside dev", func(t *testing.T) {
		_, _, err := LoadSigningSecret(Config{Env: "prod"})
		require.ErrorIs(t, err, ErrWeakSecret)
	})

	t.Run("short outside dev", func(t *testing.T) {
		_, _, err := LoadSigningSecret(Config{Env: "staging", JWTSecret: "short"})
		require.ErrorIs(t, err, ErrWeakSecret)
	})
}
