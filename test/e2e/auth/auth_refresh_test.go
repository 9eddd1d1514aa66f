package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRefreshRotation tests the complete flow:
// 1. Authenticate with client credentials
// 2. Refresh the token
// 3. Verify rotation (new tokens differ from old tokens)
// 4. Verify the old refresh token is single use
func TestRefreshRotation(t *testing.T) {
	client := setupClient(t)

	first, err := client.ClientCredentialsGrant(t.Context(), mobileClientID, mobileClientSecret)
	require.NoError(t, err)

	tokenResp, err := client.RefreshGrant(t.Context(), first.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, tokenResp)
	require.Equal(t, first.Scope, tokenResp.Scope)

	require.NotEqual(t, first.AccessToken, tokenResp.AccessToken, "Access token should be rotated")
	require.NotEqual(t, first.RefreshToken, tokenResp.RefreshToken, "Refresh token should be rotated")

	t.Logf("Refresh grant successful, tokens rotated")

	_, err = client.RefreshGrant(t.Context(), first.RefreshToken)
	assertUnauthorized(t, err, "invalid_grant", "Rotated refresh token should be rejected")

	verified, err := client.Verify(t.Context(), first.RefreshToken, "refresh_token")
	require.NoError(t, err)
	require.False(t, verified.Valid)
	require.Equal(t, "revoked", verified.Reason)

	_, err = client.RefreshGrant(t.Context(), tokenResp.RefreshToken)
	require.NoError(t, err, "Latest refresh token should still work")
}

// TestRefreshWithAccessToken verifies an access token cannot be used as a
// refresh token.
func TestRefreshWithAccessToken(t *testing.T) {
	client := setupClient(t)

	tokenResp, err := client.ClientCredentialsGrant(t.Context(), mobileClientID, mobileClientSecret)
	require.NoError(t, err)

	_, err = client.RefreshGrant(t.Context(), tokenResp.AccessToken)
	assertUnauthorized(t, err, "invalid_grant", "Access token must not refresh")
}

// TestRefreshUnknownToken verifies malformed refresh tokens are rejected.
func TestRefreshUnknownToken(t *testing.T) {
	client := setupClient(t)

	_, err := client.RefreshGrant(t.Context(), "not.a.token")
	assertUnauthorized(t, err, "invalid_grant", "Garbage refresh token should be rejected")
}
