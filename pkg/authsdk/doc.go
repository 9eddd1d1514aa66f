/*
Package authsdk provides a client SDK for the mcauth token service.

# Overview

mcauth issues paired access and refresh tokens to registered machine
clients using the client_credentials grant. The package is organised around
two types:

  - SDKClient: the unauthenticated endpoints (grant, refresh, revoke, verify,
    health) and the constructors for sessions
  - Session: an authenticated client that refreshes its access token when it
    expires

	client := authsdk.NewSDKClient("https://auth.example.com")

	session, err := client.AuthenticateWithClientCredentials(ctx, "analytics_dashboard", secret)
	if err != nil {
		return err
	}

	perms, err := session.ListPermissions(ctx)

# Refresh Tokens

Refresh tokens are single use. Every refresh returns a new refresh token and
retires the old one; presenting a retired token fails with ErrInvalidGrant.
A Session stores the newest refresh token after each automatic refresh, so
callers holding tokens outside a Session must do the same:

	pair, err := client.RefreshGrant(ctx, oldRefresh)
	// oldRefresh is now dead; keep pair.RefreshToken

# Revocation

Revoke retires one refresh token. RevokeAll retires every refresh token of
the client, which is the way to cut off a leaked credential:

	_, err := session.RevokeAll(ctx)

Access tokens are verified without server state and stay valid until they
expire, even after their refresh token is revoked.

# Verification

Verify introspects a token on the server. A token that does not verify is
reported in the response, not as an error:

	res, err := client.Verify(ctx, token, "access_token")
	if err == nil && !res.Valid {
		fmt.Println("rejected:", res.Reason)
	}

# Error Handling

Failed requests return *OAuth2Error carrying the HTTP status and the OAuth2
error code. The predefined errors match with errors.Is:

	_, err := client.ClientCredentialsGrant(ctx, id, "wrong")
	if errors.Is(err, authsdk.ErrInvalidClient) {
		// unknown client or bad secret; the server does not say which
	}

# Thread Safety

Sessions are safe for concurrent use. A refresh triggered by one goroutine
is shared by the others waiting on the same Session.
*/
package authsdk
