package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClientCredentialsFlow tests the client_credentials grant and that the
// issued access token verifies with the client's permissions.
func TestClientCredentialsFlow(t *testing.T) {
	client := setupClient(t)

	tokenResp, err := client.ClientCredentialsGrant(t.Context(), analyticsClientID, analyticsClientSecret)
	require.NoError(t, err)
	assertTokenResponse(t, tokenResp)
	require.Equal(t, "Analytics Dashboard", tokenResp.ClientName)
	require.ElementsMatch(t, []string{"contacts:read", "campaigns:read", "data_events:read"}, strings.Fields(tokenResp.Scope))
	assertScopeNotGranted(t, tokenResp.Scope, "contacts:write", "assets:read")

	t.Logf("Client authenticated, scope: %s", tokenResp.Scope)

	verified, err := client.Verify(t.Context(), tokenResp.AccessToken, "access_token")
	require.NoError(t, err)
	require.True(t, verified.Valid)
	require.Equal(t, "access_token", verified.TokenType)
	require.Equal(t, analyticsClientID, verified.ClientID)
	require.ElementsMatch(t, []string{"contacts:read", "campaigns:read", "data_events:read"}, verified.Permissions)
	require.Equal(t, int64(7200), verified.ExpiresAt-verified.IssuedAt)
}

// TestClientCredentialsWrongSecret verifies that incorrect secrets are rejected.
func TestClientCredentialsWrongSecret(t *testing.T) {
	client := setupClient(t)

	_, err := client.ClientCredentialsGrant(t.Context(), mobileClientID, "wrong-secret-12345")
	assertUnauthorized(t, err, "invalid_client", "Wrong secret should be rejected")

	_, err = client.ClientCredentialsGrant(t.Context(), "unknown_client", mobileClientSecret)
	assertUnauthorized(t, err, "invalid_client", "Unknown client should be rejected")

	t.Logf("Bad credentials correctly rejected")
}

// TestClientCredentialsSession verifies the SDK session can call the
// authenticated registry endpoints.
func TestClientCredentialsSession(t *testing.T) {
	client := setupClient(t)

	session, err := client.AuthenticateWithClientCredentials(t.Context(), marketingClientID, marketingClientSecret)
	require.NoError(t, err)
	require.True(t, session.HasScope("emails:write"))

	clients, err := session.ListClients(t.Context())
	require.NoError(t, err)
	require.Equal(t, 3, clients.Total)
	require.Contains(t, clients.Clients, mobileClientID)

	perms, err := session.ListPermissions(t.Context())
	require.NoError(t, err)
	require.Len(t, perms.ClientPermissions, 9)
	require.Contains(t, perms.Permissions, "assets:write")

	active, err := session.ActiveTokens(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, active.TotalActive)
	require.Equal(t, marketingClientID, active.ActiveRefreshTokens[0].ClientID)
}
