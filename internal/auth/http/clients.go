package http

import (
	"net/http"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
)

// ClientsHandler serves GET /v1/auth/clients.
type ClientsHandler struct {
	Clients *service.ClientRegistry
}

// ServeHTTP godoc
//
//	@Summary		List Clients
//	@Description	Lists the registered clients with their display names and permissions. Secrets are never returned.
//	@Tags			Registry
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.ListClientsResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Router			/v1/auth/clients [get].
func (h *ClientsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clients := h.Clients.List()

	resp := authsdk.ListClientsResponse{
		Clients: make(map[string]authsdk.ClientInfo, len(clients)),
		Total:   len(clients),
	}
	for _, c := range clients {
		resp.Clients[c.ID] = authsdk.ClientInfo{
			Name:        c.Name,
			Permissions: c.Permissions,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
