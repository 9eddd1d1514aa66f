package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
)

// authenticator verifies bearer access tokens with the token service and
// exposes the claims as the principal's details.
func (r *Router) authenticator() httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(ctx context.Context, token string) (httpx.Principal, error) {
		claims, err := r.TokenService.VerifyAccess(ctx, token)
		if err != nil {
			return httpx.Principal{}, err
		}
		return httpx.Principal{
			Subject: claims.ClientID,
			Scopes:  claims.Permissions,
			Details: claims,
		}, nil
	})
}

// ClaimsFromRequest returns the access token claims stored by the
// authentication middleware.
func ClaimsFromRequest(r *http.Request) (domain.TokenClaims, bool) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		return domain.TokenClaims{}, false
	}
	claims, ok := p.Details.(domain.TokenClaims)
	return claims, ok
}
