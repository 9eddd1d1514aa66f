package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"simple secret", "super_secret_key_123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long secret", strings.Repeat("a", 100)},
		{"whitespace", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashSecret(tt.secret)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.NoError(t, VerifySecret(tt.secret, hash))
			require.ErrorIs(t, VerifySecret(tt.secret+"x", hash), ErrSecretMismatch)
			require.NoError(t, ValidateHash(hash))
		})
	}
}

func TestHashSecret_Salted(t *testing.T) {
	a, err := HashSecret("same")
	require.NoError(t, err)
	b, err := HashSecret("same")
	require.NoError(t, err)

	require.NotEqual(t, a, b, "salt should make hashes differ")
}

func TestVerifySecret_Legacy(t *testing.T) {
	// Digest of the demo secret shipped with the development clients.
	const digest = "76c003030ee8ad7476629cb88a2771fe5ceb714a10c90e1dcca42ab631f68656"

	require.Equal(t, digest, LegacyHash("super_secret_key_123"))
	require.NoError(t, VerifySecret("super_secret_key_123", digest))
	require.NoError(t, VerifySecret("super_secret_key_123", strings.ToUpper(digest)))
	require.ErrorIs(t, VerifySecret("wrong", digest), ErrSecretMismatch)
	require.ErrorIs(t, VerifySecret("", digest), ErrSecretMismatch)
}

func TestVerifySecret_BadFormats(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "super_secret_key_123"},
		{"short hex", "abcdef"},
		{"wrong algorithm", "$argon2i$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=64,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$garbage$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=64,t=1,p=1$!!!$aGFzaA"},
		{"too few parts", "$argon2id$v=19$m=64,t=1,p=1$c2FsdA"},
		{"zero params", "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=64,t=0,p=1$c2FsdA$aGFzaA"},
		{"too many iterations", "$argon2id$v=19$m=64,t=17,p=1$c2FsdA$aGFzaA"},
		{"zero parallelism", "$argon2id$v=19$m=64,t=1,p=0$c2FsdA$aGFzaA"},
		{"memory below parallelism floor", "$argon2id$v=19$m=15,t=1,p=2$c2FsdA$aGFzaA"},
		{"memory too large", "$argon2id$v=19$m=4194304,t=1,p=1$c2FsdA$aGFzaA"},
		{"hash too long", "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$" + strings.Repeat("QUFB", 22)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifySecret("anything", tt.hash), ErrUnsupportedHash)
			require.Error(t, ValidateHash(tt.hash))
		})
	}
}

func TestVerifySecret_MinimumCost(t *testing.T) {
	// Smallest accepted parameters verify without faulting.
	const hash = "$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"

	require.NoError(t, ValidateHash(hash))
	require.ErrorIs(t, VerifySecret("secret", hash), ErrSecretMismatch)
}
