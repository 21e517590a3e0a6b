package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mscaglia/finbook/internal/transport/httpapi/handler"
	"github.com/mscaglia/finbook/internal/transport/httpapi/middleware"
	"github.com/mscaglia/finbook/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger         *logger.Logger
	AllowedOrigins []string

	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	IncomeHandler   *handler.TransactionHandler
	ExpenseHandler  *handler.TransactionHandler
	ReportHandler   *handler.ReportHandler
	HealthHandler   *handler.HealthHandler

	// Principal resolves the bearer credential on every request;
	// protected routes additionally require one to have been resolved.
	Principal func(http.Handler) http.Handler
}

// NewRouter creates the HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.Principal)
			r.Use(middleware.RequireAuth)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", cfg.CategoryHandler.Create)
				r.Get("/", cfg.CategoryHandler.List)
				r.Get("/{id}", cfg.CategoryHandler.Get)
				r.Put("/{id}", cfg.CategoryHandler.Update)
				r.Delete("/{id}", cfg.CategoryHandler.Delete)
			})

			mountTransactions := func(r chi.Router, h *handler.TransactionHandler) {
				r.Post("/", h.Create)
				r.Get("/", h.List)
				r.Get("/{id}", h.Get)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			}
			r.Route("/incomes", func(r chi.Router) { mountTransactions(r, cfg.IncomeHandler) })
			r.Route("/expenses", func(r chi.Router) { mountTransactions(r, cfg.ExpenseHandler) })

			r.Get("/reports/balance/current", cfg.ReportHandler.GetCurrentBalance)
			r.Get("/reports/balance/{year}/{month}", cfg.ReportHandler.GetMonthlyBalance)
		})
	})

	return r
}
