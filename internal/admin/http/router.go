package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/pkg/httpx"
	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/opsgarden/admind/pkg/slogx"

	_ "github.com/opsgarden/admind/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
	RoleService *service.RoleService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerProfile()
	r.registerRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Admind Administrative Backend API
//	@version		0.1.0
//	@description	CRUD administrative backend with JWT authentication, a server-side refresh-token allowlist and role-based access control over a user/masterData permission matrix.
//	@description
//	@description	All tokens are HS256-signed JWTs. Access and refresh tokens use distinct secrets and are always issued as a pair.
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

// permission adapts the pure authorization gate into a route middleware
// decision over the role snapshot in the caller's claims.
func permission(resource domain.Resource, action domain.Action) httpx.PermissionFunc {
	return func(c jwtx.Claims) (bool, error) {
		return service.Allowed(service.PrincipalFromClaims(c), resource, action)
	}
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict profile to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Refresh and revoke authenticate by the token in the body, not the
	// Authorization header.
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/revoke",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Logout inspects the access token itself, so it skips AuthnMiddleware
	// and reads the Authorization header directly.
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	secured := func(handler http.HandlerFunc, action domain.Action, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(permission(domain.ResourceUser, action)),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/users", secured(h.HandleList, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/search", secured(h.HandleSearch, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{id}", secured(h.HandleGet, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{id}/permissions", secured(h.HandlePermissions, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/users", secured(h.HandleCreate, domain.ActionCreate, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/users/{id}/role", secured(h.HandleUpdateRole, domain.ActionUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/users/{id}", secured(h.HandleDelete, domain.ActionDelete, httpx.ModerateLimit))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{UserService: r.UserService}

	secured := func(handler http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/profile", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/profile", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/profile/username", secured(h.HandleChangeUsername, httpx.ModerateLimit))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RoleService: r.RoleService}

	secured := func(handler http.HandlerFunc, action domain.Action, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(permission(domain.ResourceMasterData, action)),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/roles", secured(h.HandleList, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/roles/search", secured(h.HandleSearch, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/roles/{id}", secured(h.HandleGet, domain.ActionView, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/roles", secured(h.HandleCreate, domain.ActionCreate, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/roles/{id}", secured(h.HandleUpdate, domain.ActionUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/roles/{id}", secured(h.HandleDelete, domain.ActionDelete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
