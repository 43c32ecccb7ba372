package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/auth"
	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/database"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/handler"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/middleware"

	_ "github.com/portfolio-mgmt/pms-wizard/docs" // Import generated swagger docs
)

// Pinger is a dependency checked by the readiness endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the API handlers mounted by the router
type Handlers struct {
	Wizard     *handler.WizardHandler
	Navigation *handler.NavigationHandler
	Validation *handler.ValidationHandler
	Reference  *handler.ReferenceHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	sessions       Pinger
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
}

// NewRouter creates the API router. sessions may be nil when wizard sessions
// are kept in process.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	sessions Pinger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		sessions:       sessions,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	readers := rt.authMiddleware.RequireRole(auth.RoleViewer, auth.RoleBudgetTeam)
	editors := rt.authMiddleware.RequireRole(auth.RoleBudgetTeam)
	h := rt.handlers

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)
		if rt.cfg.Server.RequestTimeout > 0 {
			r.Use(requestTimeout(rt.cfg.Server.RequestTimeoutDuration()))
		}

		// Reference data
		r.With(readers).Get("/cans", h.Reference.ListCANs)
		r.With(readers).Get("/agreements/{id}/services-components", h.Reference.ListServicesComponents)

		// Rule sets
		r.Route("/validation", func(r chi.Router) {
			r.Use(readers)
			r.Get("/", h.Validation.ListSuites)
			r.Post("/{suite}", h.Validation.Validate)
		})

		// Wizards
		r.Route("/wizards", func(r chi.Router) {
			r.With(editors).Post("/", h.Wizard.Create)
			r.With(readers).Get("/{id}", h.Wizard.Get)
			r.With(readers).Get("/{id}/export", h.Wizard.Export)
			r.With(editors).Post("/{id}/actions", h.Wizard.Dispatch)
			r.With(editors).Post("/{id}/save", h.Wizard.Save)
			r.With(editors).Delete("/{id}", h.Wizard.Cancel)
		})

		// Navigation blockers, one registry per client
		r.Route("/navigation/{clientId}", func(r chi.Router) {
			r.Use(editors)
			r.Get("/blockers", h.Navigation.ListBlockers)
			r.Put("/blockers/{blockerId}", h.Navigation.RegisterBlocker)
			r.Patch("/blockers/{blockerId}", h.Navigation.UpdateBlocker)
			r.Delete("/blockers/{blockerId}", h.Navigation.UnregisterBlocker)
			r.Post("/attempt", h.Navigation.Attempt)
			r.Post("/resolve", h.Navigation.Resolve)
		})
	})

	return r
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, domain.HealthDTO{
			Status: "unhealthy",
			Checks: map[string]string{"database": err.Error()},
		})
		return
	}
	writeHealth(w, http.StatusOK, domain.HealthDTO{Status: "healthy", Database: stats})
}

func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if err := database.HealthCheck(r.Context(), rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	if rt.sessions != nil {
		if err := rt.sessions.Ping(r.Context()); err != nil {
			rt.logger.Error("Session store health check failed", zap.Error(err))
			checks["sessions"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["sessions"] = "healthy"
		}
	}

	if healthy {
		writeHealth(w, http.StatusOK, domain.HealthDTO{Status: "healthy", Checks: checks})
		return
	}
	writeHealth(w, http.StatusServiceUnavailable, domain.HealthDTO{Status: "unhealthy", Checks: checks})
}

func writeHealth(w http.ResponseWriter, status int, body domain.HealthDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestTimeout bounds the context of API requests
func requestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
