package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

// RevokeHandler serves POST /v1/auth/revoke. The refresh token itself is the
// credential: whoever holds it may revoke it, or every token of its client.
// Revoking an already revoked or expired token succeeds.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Revoke Refresh Tokens
//	@Description	Revokes the presented refresh token, or with revoke_all every refresh token of its client.
//	@Description	The token must carry a valid signature but may be expired. Access tokens are not affected and expire naturally.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RevokeRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.RevokeResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_token"
//	@Failure		500		{object}	authsdk.ErrorResponse	"server_error"
//	@Router			/v1/auth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RevokeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.TokenService.Revoke(ctx, req.RefreshToken, req.RevokeAll)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			errMissingRefresh.WriteError(w)
		case errors.Is(err, service.ErrInvalidToken):
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("revoke failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RevokeResponse{
		Revoked: true,
		Message: res.Message,
		Count:   res.Count,
	})
}
