package http

import (
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/domain"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
)

// PermissionsHandler serves GET /v1/auth/permissions.
type PermissionsHandler struct{}

// ServeHTTP godoc
//
//	@Summary		List Permissions
//	@Description	Lists every permission known to the service and the permissions carried by the caller's access token.
//	@Tags			Registry
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.PermissionsResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Router			/v1/auth/permissions [get].
func (h *PermissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	catalogue := domain.Catalogue()
	all := make([]string, 0, len(catalogue))
	for _, p := range catalogue {
		all = append(all, p.Permission)
	}

	granted := []string{}
	if claims, ok := ClaimsFromRequest(r); ok && claims.Permissions != nil {
		granted = claims.Permissions
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.PermissionsResponse{
		Permissions:       all,
		ClientPermissions: granted,
	})
}
