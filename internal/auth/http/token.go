package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

var (
	errMissingCredentials = authsdk.NewOAuth2Error(
		http.StatusBadRequest,
		authsdk.ErrorCodeInvalidRequest,
		"client_id, client_secret and grant_type are required",
	)
	errOnlyClientCredentials = authsdk.NewOAuth2Error(
		http.StatusBadRequest,
		authsdk.ErrorCodeUnsupportedGrantType,
		"only the client_credentials grant type is supported",
	)
)

// TokenHandler serves POST /v1/auth/token.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Client Credentials Grant
//	@Description	Exchanges a client id and secret for an access token and a refresh token.
//	@Description	Unknown clients and wrong secrets get the same response.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TokenRequest	true	"Client credentials"
//	@Success		200		{object}	authsdk.TokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request, unsupported_grant_type"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_client"
//	@Failure		500		{object}	authsdk.ErrorResponse	"server_error"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Header			200		{string}	Pragma					"no-cache"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.TokenService.Grant(ctx, req.ClientID, req.ClientSecret, req.GrantType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			errMissingCredentials.WriteError(w)
		case errors.Is(err, service.ErrUnsupportedGrant):
			errOnlyClientCredentials.WriteError(w)
		case service.IsAuthentication(err):
			authsdk.ErrInvalidClient.WriteError(w)
		default:
			log.Error("client_credentials grant failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	resp := tokenResponse(pair)
	resp.RestInstanceURL = instanceURL(r)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// instanceURL is the scheme and host the request arrived on.
func instanceURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func tokenResponse(pair *domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        pair.TokenType,
		ExpiresIn:        int(pair.ExpiresIn.Seconds()),
		RefreshExpiresIn: int(pair.RefreshExpiresIn.Seconds()),
		Scope:            pair.Scope,
		ClientName:       pair.ClientName,
	}
}
