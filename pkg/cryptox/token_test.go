package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomSecret(t *testing.T) {
	for _, size := range []int{16, SecretSize, 64} {
		a, err := RandomSecret(size)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(a)
		require.NoError(t, err)
		require.Len(t, raw, size)

		b, err := RandomSecret(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b, "secrets should be unique")
	}
}

func TestRandomSecret_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		s, err := RandomSecret(size)
		require.Error(t, err)
		require.Empty(t, s)
	}
}

func TestFingerprint(t *testing.T) {
	a1 := Fingerprint("token-1")
	a2 := Fingerprint("token-1")
	b := Fingerprint("token-2")

	require.Equal(t, a1, a2, "fingerprint should be deterministic")
	require.NotEqual(t, a1, b)
	require.Len(t, a1, 12)
	require.NotContains(t, a1, "token")
}
