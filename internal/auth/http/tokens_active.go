package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

// ActiveTokensHandler serves GET /v1/auth/tokens/active.
type ActiveTokensHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		List Active Refresh Tokens
//	@Description	Removes expired refresh tokens from the registry, then lists the live ones.
//	@Tags			Registry
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.ActiveTokensResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"server_error"
//	@Router			/v1/auth/tokens/active [get].
func (h *ActiveTokensHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.TokenService.ListActive(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list active refresh tokens", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	resp := authsdk.ActiveTokensResponse{
		ActiveRefreshTokens:  make([]authsdk.ActiveToken, 0, len(active.Entries)),
		TotalActive:          len(active.Entries),
		ExpiredTokensCleaned: active.Swept,
	}
	for _, e := range active.Entries {
		resp.ActiveRefreshTokens = append(resp.ActiveRefreshTokens, authsdk.ActiveToken{
			JTI:       e.TokenID,
			ClientID:  e.ClientID,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
			ExpiresAt: e.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
