package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bizledger/bizledger/internal/adapter/http/handler"
	"github.com/bizledger/bizledger/internal/adapter/http/middleware"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntityHandler    *handler.EntityHandler
	LedgerHandler    *handler.LedgerHandler
	ProductHandler   *handler.ProductHandler
	InventoryHandler *handler.InventoryHandler
	PricingHandler   *handler.PricingHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/customers", entityRoutes(cfg, domain.EntityTypeCustomer))
		r.Route("/suppliers", entityRoutes(cfg, domain.EntityTypeSupplier))

		// Products and inventory
		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
			r.Post("/{id}/movements", cfg.InventoryHandler.RecordMovement)
			r.Get("/{id}/movements", cfg.InventoryHandler.ListMovements)
			r.Get("/{id}/stock", cfg.InventoryHandler.GetStock)
			r.Get("/{id}/stock-level", cfg.InventoryHandler.GetStockLevel)
			r.Get("/{id}/turnover", cfg.InventoryHandler.GetTurnover)
			r.Get("/{id}/reorder-advice", cfg.InventoryHandler.GetReorderAdvice)
		})

		// Pricing
		r.Post("/quotes", cfg.PricingHandler.Quote)

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/financial", cfg.ReportHandler.Financial)
			r.Get("/kpis", cfg.ReportHandler.KPIs)
			r.Get("/cashflow", cfg.ReportHandler.CashFlow)
			r.Get("/forecast", cfg.ReportHandler.Forecast)
		})
	})

	return r
}

// entityRoutes registers the shared customer/supplier route set for
// one entity type.
func entityRoutes(cfg RouterConfig, entityType domain.EntityType) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", cfg.EntityHandler.Create(entityType))
		r.Get("/", cfg.EntityHandler.List(entityType))
		r.Get("/{id}", cfg.EntityHandler.Get(entityType))
		r.Post("/{id}/entries", cfg.LedgerHandler.RecordEntry(entityType))
		r.Get("/{id}/entries", cfg.LedgerHandler.ListEntries(entityType))
		r.Get("/{id}/balance", cfg.LedgerHandler.GetBalance(entityType))
		r.Get("/{id}/summary", cfg.LedgerHandler.GetSummary(entityType))
	}
}
