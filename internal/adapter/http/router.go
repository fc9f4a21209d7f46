package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iftihoq/gobank/internal/adapter/http/handler"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	"github.com/iftihoq/gobank/internal/infrastructure/auth"
	"github.com/iftihoq/gobank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	LoanHandler        *handler.LoanHandler
	BankHandler        *handler.BankHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.Logger != nil {
		r.Use(cfg.Logger.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
				r.Put("/password", cfg.AuthHandler.ChangePassword)
			})
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Get("/accounts/me", cfg.AccountHandler.Me)

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/deposit", cfg.TransactionHandler.Deposit)
				r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
				r.Post("/transfer", cfg.TransactionHandler.Transfer)
				r.Get("/report", cfg.TransactionHandler.Report)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/", cfg.LoanHandler.Request)
				r.Get("/", cfg.LoanHandler.List)
				r.Post("/{id}/repay", cfg.LoanHandler.Repay)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/approve", cfg.LoanHandler.Approve)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/bank/reserve", cfg.BankHandler.Reserve)
			})
		})
	})

	return r
}
