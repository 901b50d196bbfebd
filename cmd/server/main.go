package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobudget/internal/adapter/http"
	"github.com/iho/gobudget/internal/adapter/http/handler"
	"github.com/iho/gobudget/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gobudget/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobudget/internal/adapter/repository/redis"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/auth"
	"github.com/iho/gobudget/internal/infrastructure/config"
	"github.com/iho/gobudget/internal/infrastructure/logger"
	"github.com/iho/gobudget/internal/infrastructure/metrics"
	"github.com/iho/gobudget/internal/infrastructure/postgres"
	"github.com/iho/gobudget/internal/infrastructure/redis"
	"github.com/iho/gobudget/internal/usecase"
)

const rateLimiterCleanupInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gobudget",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	jwtManager, err := newJWTManager(cfg, logger)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisEnabled {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info().Msg("connected to redis")
	} else {
		logger.Warn().Msg("redis disabled: catalog cache and idempotency keys are off")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(logger)
	idGen := postgresRepo.NewULIDGenerator()
	userRepo := postgresRepo.NewUserRepository(pool)
	sourceRepo := postgresRepo.NewSourceRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	typeRepo := postgresRepo.NewTransactionTypeRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if redisClient != nil {
		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize use cases
	timeout := cfg.LedgerTxTimeout
	resolver := usecase.NewCatalogResolver(typeRepo, categoryRepo, cache, cfg.CatalogCacheTTL, logger)
	recalculationUC := usecase.NewRecalculationUseCase(txManager, sourceRepo, transactionRepo, retrier, m, timeout, logger)
	sourceUC := usecase.NewSourceUseCase(txManager, sourceRepo, recalculationUC, idGen, retrier, timeout, logger)
	ledgerUC := usecase.NewLedgerUseCase(usecase.LedgerConfig{
		TxManager:       txManager,
		SourceRepo:      sourceRepo,
		TransactionRepo: transactionRepo,
		Catalog:         resolver,
		IDGen:           idGen,
		Retrier:         retrier,
		Metrics:         m,
		Policy:          domain.FundsPolicy{CheckInsufficientFunds: cfg.CheckInsufficientFunds},
		Timeout:         timeout,
		Logger:          logger,
	})
	catalogUC := usecase.NewCatalogUseCase(txManager, typeRepo, categoryRepo, resolver, idGen, retrier, timeout)
	reconciliationUC := usecase.NewReconciliationUseCase(sourceRepo, transactionRepo, m, logger)
	userUC := usecase.NewUserUseCase(txManager, userRepo, sourceUC, idGen, retrier, timeout)
	summaryUC := usecase.NewSummaryUseCase(transactionRepo)

	// Initialize handlers
	checks := map[string]handler.Pinger{"postgres": pool}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	var tokens handler.TokenIssuer
	if jwtManager != nil {
		tokens = jwtManager
	}

	rateLimiter := newRateLimiter(cfg, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		SourceHandler:      handler.NewSourceHandler(sourceUC, recalculationUC, reconciliationUC),
		CatalogHandler:     handler.NewCatalogHandler(catalogUC),
		UserHandler:        handler.NewUserHandler(userUC, tokens),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC),
		HealthHandler:      handler.NewHealthHandler(checks),
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Logger:             logger,
	})

	server := newServer(cfg, router)

	if rateLimiter != nil {
		go cleanupLimiters(ctx, rateLimiter, rateLimiterCleanupInterval)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// newJWTManager returns nil when bearer authentication is disabled. The
// owner is then taken from X-User-ID, which only a gateway may set.
func newJWTManager(cfg *config.Config, logger zerolog.Logger) (*auth.JWTManager, error) {
	if !cfg.AuthEnabled {
		logger.Warn().
			Str("header", middleware.UserIDHeader).
			Msg("AUTH_ENABLED is false: trusting owner header, expose only behind a gateway")
		return nil, nil
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_ENABLED requires JWT_SECRET")
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}

	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = int(cfg.RateLimitRPS) + 1
	}

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, burst)
	if m != nil {
		rl.WithHits(m.RateLimitHits)
	}
	return rl
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters()
		}
	}
}
