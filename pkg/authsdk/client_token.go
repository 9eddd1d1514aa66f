package authsdk

import (
	"context"
)

// ClientCredentialsGrant requests a token pair for a registered client.
func (c *SDKClient) ClientCredentialsGrant(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	req := TokenRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		GrantType:    "client_credentials",
	}

	var tokenResp TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/token", req, &tokenResp); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}

// RefreshGrant exchanges a refresh token for a new pair. The old refresh
// token cannot be used again.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	req := RefreshRequest{
		RefreshToken: refreshToken,
		GrantType:    "refresh_token",
	}

	var tokenResp TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", req, &tokenResp); err != nil {
		return nil, err
	}
	return &tokenResp, nil
}

// RevokeToken revokes a refresh token, or every refresh token of its client
// when all is set.
func (c *SDKClient) RevokeToken(ctx context.Context, refreshToken string, all bool) (*RevokeResponse, error) {
	req := RevokeRequest{
		RefreshToken: refreshToken,
		RevokeAll:    all,
	}

	var revokeResp RevokeResponse
	if err := c.postJSON(ctx, "/v1/auth/revoke", req, &revokeResp); err != nil {
		return nil, err
	}
	return &revokeResp, nil
}

// Verify asks the service whether token is valid. tokenType is
// "access_token", "refresh_token" or empty for access. An invalid token is
// not an error; check VerifyResponse.Valid.
func (c *SDKClient) Verify(ctx context.Context, token, tokenType string) (*VerifyResponse, error) {
	req := VerifyRequest{
		Token:     token,
		TokenType: tokenType,
	}

	var verifyResp VerifyResponse
	if err := c.postJSON(ctx, "/v1/auth/verify", req, &verifyResp); err != nil {
		return nil, err
	}
	return &verifyResp, nil
}
