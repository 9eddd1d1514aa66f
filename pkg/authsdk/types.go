package authsdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents an OAuth2 style error body.
// Client code should use the OAuth2Error type from errors.go instead.
type ErrorResponse struct {
	// Error is the OAuth2 error code (e.g., "invalid_request", "invalid_grant")
	Error string `json:"error" example:"invalid_client"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description" example:"invalid client credentials"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenRequest is the body of POST /v1/auth/token.
type TokenRequest struct {
	ClientID     string `json:"client_id" example:"marketing_cloud_app_1"`
	ClientSecret string `json:"client_secret" example:"super_secret_key_123"`
	GrantType    string `json:"grant_type" example:"client_credentials"`
}

// RefreshRequest is the body of POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type" example:"refresh_token"`
}

// TokenResponse is returned by the token and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is a single-use JWT exchanged for a new pair
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in" example:"7200"`

	// RefreshExpiresIn is the lifetime in seconds of the refresh token
	RefreshExpiresIn int `json:"refresh_expires_in" example:"2592000"`

	// Scope is the space-delimited list of permissions granted
	Scope string `json:"scope" example:"contacts:read campaigns:read"`

	// ClientName is the display name of the client the tokens belong to
	ClientName string `json:"client_name,omitempty" example:"Analytics Dashboard"`

	// RestInstanceURL is the base URL to call the REST API on. Only set by
	// the client credentials grant.
	RestInstanceURL string `json:"rest_instance_url,omitempty" example:"http://localhost:8080"`
}

// RevokeRequest is the body of POST /v1/auth/revoke.
type RevokeRequest struct {
	RefreshToken string `json:"refresh_token"`

	// RevokeAll revokes every refresh token of the token's client
	RevokeAll bool `json:"revoke_all,omitempty"`
}

// RevokeResponse reports a successful revocation.
type RevokeResponse struct {
	Revoked bool   `json:"revoked" example:"true"`
	Message string `json:"message" example:"Refresh token revoked successfully"`

	// Count is the number of entries that changed state
	Count int `json:"count" example:"1"`
}

// VerifyRequest is the body of POST /v1/auth/verify.
type VerifyRequest struct {
	Token string `json:"token"`

	// TokenType is access_token (default) or refresh_token
	TokenType string `json:"token_type,omitempty" example:"access_token"`
}

// VerifyResponse is the introspection result. Only Valid and Reason are set
// for tokens that did not verify.
type VerifyResponse struct {
	Valid       bool     `json:"valid"`
	TokenType   string   `json:"token_type,omitempty" example:"access_token"`
	ClientID    string   `json:"client_id,omitempty" example:"analytics_dashboard"`
	Permissions []string `json:"permissions,omitempty"`
	ExpiresAt   int64    `json:"expires_at,omitempty"` // epoch seconds
	IssuedAt    int64    `json:"issued_at,omitempty"`  // epoch seconds

	// Reason is one of malformed, bad_signature, expired, wrong_kind,
	// not_found, revoked, missing_token
	Reason string `json:"reason,omitempty" example:"expired"`
}

// ============================================================================
// Registry Types
// ============================================================================

// ClientInfo is the public view of a registered client.
type ClientInfo struct {
	Name        string   `json:"name" example:"Mobile Application"`
	Permissions []string `json:"permissions"`
}

// ListClientsResponse maps client ids to their public info.
type ListClientsResponse struct {
	Clients map[string]ClientInfo `json:"clients"`
	Total   int                   `json:"total"`
}

// PermissionsResponse lists the permission catalogue and the caller's grants.
type PermissionsResponse struct {
	Permissions       []string `json:"permissions"`
	ClientPermissions []string `json:"client_permissions"`
}

// ActiveToken is one live refresh token registry entry.
type ActiveToken struct {
	JTI       string `json:"jti"`
	ClientID  string `json:"client_id"`
	CreatedAt string `json:"created_at"` // RFC3339
	ExpiresAt string `json:"expires_at"` // RFC3339
}

// ActiveTokensResponse lists live refresh tokens after sweeping expired ones.
type ActiveTokensResponse struct {
	ActiveRefreshTokens  []ActiveToken `json:"active_refresh_tokens"`
	TotalActive          int           `json:"total_active"`
	ExpiredTokensCleaned int           `json:"expired_tokens_cleaned"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Registry indicates the refresh token registry status
	Registry string `json:"registry"`
}
