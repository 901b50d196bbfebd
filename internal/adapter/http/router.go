package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gobudget/internal/adapter/http/handler"
	"github.com/iho/gobudget/internal/adapter/http/middleware"
	"github.com/iho/gobudget/internal/infrastructure/auth"
	"github.com/iho/gobudget/internal/infrastructure/metrics"
	"github.com/iho/gobudget/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	SourceHandler      *handler.SourceHandler
	CatalogHandler     *handler.CatalogHandler
	UserHandler        *handler.UserHandler
	SummaryHandler     *handler.SummaryHandler
	HealthHandler      *handler.HealthHandler

	// JWTManager enables bearer authentication. When nil the owner is
	// taken from the X-User-ID header.
	JWTManager *auth.JWTManager

	IdempotencyStore usecase.IdempotencyStore // optional
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter // optional
	Metrics          *metrics.Metrics        // optional
	MetricsHandler   http.Handler            // served on /metrics when set
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))

		var idempotency func(http.Handler) http.Handler
		if cfg.IdempotencyStore != nil {
			idempotency = middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Metrics, cfg.Logger).Wrap
		}

		// Registration is the only unauthenticated API call.
		r.Group(func(r chi.Router) {
			if idempotency != nil {
				r.Use(idempotency)
			}
			r.Post("/users", cfg.UserHandler.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTManager))
			// Runs after authentication so keys are scoped per owner.
			if idempotency != nil {
				r.Use(idempotency)
			}

			r.Get("/users/me", cfg.UserHandler.Me)

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.Create)
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.Put("/{id}", cfg.TransactionHandler.Update)
				r.Delete("/{id}", cfg.TransactionHandler.Delete)
			})

			r.Route("/sources", func(r chi.Router) {
				r.Post("/", cfg.SourceHandler.Create)
				r.Get("/", cfg.SourceHandler.List)
				r.Post("/provision", cfg.SourceHandler.Provision)
				r.Get("/reconciliation", cfg.SourceHandler.Report)
				r.Get("/{id}", cfg.SourceHandler.Get)
				r.Patch("/{id}", cfg.SourceHandler.Update)
				r.Delete("/{id}", cfg.SourceHandler.Delete)
				r.Post("/{id}/recalculate", cfg.SourceHandler.Recalculate)
				r.Get("/{id}/reconcile", cfg.SourceHandler.Reconcile)
			})

			r.Route("/types", func(r chi.Router) {
				r.Get("/", cfg.CatalogHandler.ListTypes)
				r.Post("/", cfg.CatalogHandler.CreateType)
				r.Get("/{id}", cfg.CatalogHandler.GetType)
				r.Patch("/{id}", cfg.CatalogHandler.RenameType)
				r.Delete("/{id}", cfg.CatalogHandler.DeleteType)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", cfg.CatalogHandler.ListCategories)
				r.Post("/", cfg.CatalogHandler.CreateCategory)
				r.Get("/{id}", cfg.CatalogHandler.GetCategory)
				r.Patch("/{id}", cfg.CatalogHandler.RenameCategory)
				r.Delete("/{id}", cfg.CatalogHandler.DeleteCategory)
			})

			r.Get("/summary", cfg.SummaryHandler.Get)
		})
	})

	return r
}
