package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mcauth/internal/auth/service"
	"github.com/aussiebroadwan/mcauth/internal/auth/store"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
	"github.com/aussiebroadwan/mcauth/pkg/slogx"

	_ "github.com/aussiebroadwan/mcauth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService *service.TokenService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerRegistry()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			mcauth Token Service API
//	@version		0.1.0
//	@description	Client-credentials authentication for the marketing automation API.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs. Refresh tokens are single use and tracked in a registry so they can be rotated and revoked.
//
//	@contact.name				AussieBroadWAN Team
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	r.Mux.Handle("POST /v1/auth/token", &TokenHandler{TokenService: r.TokenService})
	r.Mux.Handle("POST /v1/auth/refresh", &RefreshHandler{TokenService: r.TokenService})
	r.Mux.Handle("POST /v1/auth/revoke", &RevokeHandler{TokenService: r.TokenService})
	r.Mux.Handle("POST /v1/auth/verify", &VerifyHandler{TokenService: r.TokenService})
}

func (r *Router) registerRegistry() {
	authn := httpx.AuthnMiddleware(r.authenticator())

	r.Mux.Handle("GET /v1/auth/clients",
		httpx.Chain(&ClientsHandler{Clients: r.TokenService.Clients}, authn),
	)
	r.Mux.Handle("GET /v1/auth/permissions",
		httpx.Chain(&PermissionsHandler{}, authn),
	)
	r.Mux.Handle("GET /v1/auth/tokens/active",
		httpx.Chain(&ActiveTokensHandler{TokenService: r.TokenService}, authn),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

// Require returns middleware that lets a request through only with a valid
// access token carrying every listed permission. Resource handlers mounted
// on the same mux use it to guard themselves.
func (r *Router) Require(permissions ...string) httpx.Middleware {
	authn := httpx.AuthnMiddleware(r.authenticator())
	authz := httpx.RequireAllScopes(permissions...)
	return func(next http.Handler) http.Handler {
		return httpx.Chain(next, authn, authz)
	}
}
