package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/internal/admissions/service"
	"github.com/aussiebroadwan/admissions/internal/admissions/store"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
	"github.com/aussiebroadwan/admissions/pkg/jwtx"
	"github.com/aussiebroadwan/admissions/pkg/slogx"

	_ "github.com/aussiebroadwan/admissions/api/admissions" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	LeadService        *service.LeadService
	ApplicationService *service.ApplicationService
	TaskService        *service.TaskService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
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
	r.registerLeads()
	r.registerApplications()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Admissions Tracker API
//	@version		0.1.0
//	@description	Multi-tenant admissions tracking for student recruitment: leads, applications, and follow-up tasks, with per-entity access policy and task lifecycle events.
//	@description
//	@description				Access tokens are minted by the external auth service and verified here using EdDSA.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/admissions
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

// staffOnly is the coarse boundary gate; every admissions route requires a
// staff role before the policy evaluator sees the request.
func staffOnly() httpx.Middleware {
	return httpx.RequireAnyRole(string(domain.RoleAdmin), string(domain.RoleCounselor))
}

func (r *Router) registerLeads() {
	h := &LeadsHandler{LeadService: r.LeadService}

	// POST /v1/leads - moderate rate limit by user (write operation)
	r.Mux.Handle("POST /v1/leads",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/leads - lenient rate limit (dashboard polling)
	r.Mux.Handle("GET /v1/leads",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /v1/leads/{id}/stage - moderate rate limit by user
	r.Mux.Handle("POST /v1/leads/{id}/stage",
		httpx.Chain(http.HandlerFunc(h.HandleStage),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// DELETE /v1/leads/{id} - moderate rate limit by user (cascading delete)
	r.Mux.Handle("DELETE /v1/leads/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerApplications() {
	h := &ApplicationsHandler{ApplicationService: r.ApplicationService}

	r.Mux.Handle("POST /v1/applications",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/applications",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("POST /v1/tasks",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/tasks",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/tasks/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.AuthnMiddleware(r.verifier),
			staffOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
