package authsdk

import (
	"context"
	"errors"
	"net/http"
)

// ErrNotReady is returned by GetReadiness when the service answers 503. The
// health response is still returned so callers can inspect Checks.
var ErrNotReady = errors.New("authsdk: token service not ready")

// GetLiveness reports whether the token service process is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	health, _, err := c.getHealth(ctx, "/livez")
	return health, err
}

// GetReadiness reports whether the token service can serve token requests,
// including the state of its refresh token registry.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	health, status, err := c.getHealth(ctx, "/readyz")
	if err == nil && status == http.StatusServiceUnavailable {
		return health, ErrNotReady
	}
	return health, err
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, 0, err
	}

	// A degraded readiness check still carries a health body.
	status := resp.StatusCode
	expected := http.StatusOK
	if status == http.StatusServiceUnavailable {
		expected = status
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, expected); err != nil {
		return nil, status, err
	}
	return &health, status, nil
}
