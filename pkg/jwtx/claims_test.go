package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/mcauth/pkg/idx"
	"github.com/aussiebroadwan/mcauth/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "mcauth",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("mcauth"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("other-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestNewClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 500, time.UTC)
	perms := []string{"contacts:read"}

	c := jwtx.NewClaims(jwtx.TypeRefresh, "c1", perms, "mcauth", time.Hour, now)

	require.Equal(t, "c1", c.ClientID)
	require.Equal(t, jwtx.TypeRefresh, c.Type)
	require.Equal(t, "mcauth", c.Issuer)
	require.Equal(t, now.Truncate(time.Second), c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour).Truncate(time.Second), c.ExpiresAt.Time)

	id, err := idx.Parse(c.ID)
	require.NoError(t, err)
	require.WithinDuration(t, now, id.Time(), time.Millisecond)

	// Permissions are copied so callers cannot mutate issued claims.
	perms[0] = "contacts:write"
	require.Equal(t, []string{"contacts:read"}, c.Permissions)
	require.True(t, c.HasPermission("contacts:read"))
	require.False(t, c.HasPermission("contacts:write"))
}

func TestParseTokenType(t *testing.T) {
	tests := []struct {
		in   string
		want jwtx.TokenType
		ok   bool
	}{
		{"", jwtx.TypeAccess, true},
		{"access", jwtx.TypeAccess, true},
		{"access_token", jwtx.TypeAccess, true},
		{"refresh", jwtx.TypeRefresh, true},
		{"refresh_token", jwtx.TypeRefresh, true},
		{"id_token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := jwtx.ParseTokenType(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
