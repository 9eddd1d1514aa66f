package http

import (
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/jwtx"
)

var errBadTokenType = authsdk.NewOAuth2Error(
	http.StatusBadRequest,
	authsdk.ErrorCodeInvalidRequest,
	"token_type must be access_token or refresh_token",
)

// VerifyHandler serves POST /v1/auth/verify.
type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Verify Token
//	@Description	Reports whether a token is currently valid. Refresh tokens are also checked against the registry.
//	@Description	Tokens that do not verify are reported with valid=false and a reason, not as an error.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyRequest	true	"Token to verify"
//	@Success		200		{object}	authsdk.VerifyResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request"
//	@Router			/v1/auth/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	typ, err := jwtx.ParseTokenType(req.TokenType)
	if err != nil {
		errBadTokenType.WriteError(w)
		return
	}

	res := h.TokenService.Introspect(r.Context(), req.Token, typ)
	if !res.Valid {
		httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyResponse{Reason: res.Reason})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyResponse{
		Valid:       true,
		TokenType:   string(res.Claims.Kind),
		ClientID:    res.Claims.ClientID,
		Permissions: res.Claims.Permissions,
		ExpiresAt:   res.Claims.ExpiresAt.Unix(),
		IssuedAt:    res.Claims.IssuedAt.Unix(),
	})
}
