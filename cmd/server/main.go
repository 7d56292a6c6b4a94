package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bizledger/bizledger/internal/adapter/http"
	"github.com/bizledger/bizledger/internal/adapter/http/handler"
	"github.com/bizledger/bizledger/internal/adapter/http/middleware"
	postgresRepo "github.com/bizledger/bizledger/internal/adapter/repository/postgres"
	redisRepo "github.com/bizledger/bizledger/internal/adapter/repository/redis"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/infrastructure/config"
	"github.com/bizledger/bizledger/internal/infrastructure/eventpublisher"
	"github.com/bizledger/bizledger/internal/infrastructure/logger"
	"github.com/bizledger/bizledger/internal/infrastructure/metrics"
	"github.com/bizledger/bizledger/internal/infrastructure/postgres"
	"github.com/bizledger/bizledger/internal/infrastructure/redis"
	"github.com/bizledger/bizledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = zlog

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	defaultCreditLimit, err := domain.MoneyFromString(cfg.DefaultCreditLimit)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.DefaultCreditLimit).Msg("invalid default credit limit")
	}

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entityRepo := postgresRepo.NewEntityRepository(pool)
	entryRepo := postgresRepo.NewLedgerEntryRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	ruleRepo := postgresRepo.NewRuleRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	entityUC := usecase.NewEntityUseCase(entityRepo, idGen, defaultCreditLimit)
	ledgerUC := usecase.NewLedgerUseCase(txManager, entityRepo, entryRepo, outboxRepo, idGen, usecase.LedgerConfig{
		Retrier:  retrier,
		Cache:    cache,
		CacheTTL: cfg.BalanceCacheTTL,
		Metrics:  m,
	})
	productUC := usecase.NewProductUseCase(productRepo, idGen, usecase.ProductDefaults{
		LowStockThreshold:   cfg.DefaultLowStockThreshold,
		OutOfStockThreshold: cfg.DefaultOutOfStockThreshold,
		LeadTimeDays:        cfg.DefaultLeadTimeDays,
		SafetyStockDays:     cfg.DefaultSafetyStockDays,
		MaxOrderQuantity:    cfg.DefaultMaxOrderQuantity,
	})
	inventoryUC := usecase.NewInventoryUseCase(txManager, productRepo, movementRepo, outboxRepo, idGen, usecase.InventoryConfig{
		Retrier:        retrier,
		Cache:          cache,
		CacheTTL:       cfg.StockCacheTTL,
		TurnoverWindow: cfg.TurnoverWindow,
		Metrics:        m,
	})
	pricingUC := usecase.NewPricingUseCase(ruleRepo, m)
	financialUC := usecase.NewFinancialUseCase(entryRepo, movementRepo, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntityHandler:    handler.NewEntityHandler(entityUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		ProductHandler:   handler.NewProductHandler(productUC),
		InventoryHandler: handler.NewInventoryHandler(inventoryUC),
		PricingHandler:   handler.NewPricingHandler(pricingUC),
		ReportHandler:    handler.NewReportHandler(financialUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           zlog,
	})

	// Start the outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient),
		Logger:     slog.Default(),
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
