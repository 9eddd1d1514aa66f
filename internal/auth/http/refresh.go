package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

var (
	errMissingRefresh = authsdk.NewOAuth2Error(
		http.StatusBadRequest,
		authsdk.ErrorCodeInvalidRequest,
		"refresh_token is required",
	)
	errOnlyRefreshToken = authsdk.NewOAuth2Error(
		http.StatusBadRequest,
		authsdk.ErrorCodeUnsupportedGrantType,
		"grant_type must be refresh_token",
	)
)

// RefreshHandler serves POST /v1/auth/refresh. A refresh token is accepted
// once; the response carries its replacement.
type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Token Grant
//	@Description	Exchanges a refresh token for a new access token and a new refresh token.
//	@Description	The presented refresh token is retired and cannot be used again.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.TokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request, unsupported_grant_type"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_grant"
//	@Failure		500		{object}	authsdk.ErrorResponse	"server_error"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.RefreshToken, req.GrantType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			errMissingRefresh.WriteError(w)
		case errors.Is(err, service.ErrUnsupportedGrant):
			errOnlyRefreshToken.WriteError(w)
		case service.IsAuthentication(err):
			authsdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("refresh grant failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}
