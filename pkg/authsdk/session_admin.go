package authsdk

import (
	"context"
	"net/http"
)

// ListClients returns the registered clients and their permissions.
func (s *Session) ListClients(ctx context.Context) (*ListClientsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/clients", nil)
	if err != nil {
		return nil, err
	}

	var out ListClientsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPermissions returns the permission catalogue and the caller's grants.
func (s *Session) ListPermissions(ctx context.Context) (*PermissionsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/permissions", nil)
	if err != nil {
		return nil, err
	}

	var out PermissionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveTokens sweeps expired refresh tokens and lists the live ones.
func (s *Session) ActiveTokens(ctx context.Context) (*ActiveTokensResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/tokens/active", nil)
	if err != nil {
		return nil, err
	}

	var out ActiveTokensResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
