package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iftihoq/gobank/internal/adapter/http"
	"github.com/iftihoq/gobank/internal/adapter/http/handler"
	"github.com/iftihoq/gobank/internal/adapter/http/middleware"
	postgresRepo "github.com/iftihoq/gobank/internal/adapter/repository/postgres"
	redisRepo "github.com/iftihoq/gobank/internal/adapter/repository/redis"
	"github.com/iftihoq/gobank/internal/infrastructure/auth"
	"github.com/iftihoq/gobank/internal/infrastructure/config"
	"github.com/iftihoq/gobank/internal/infrastructure/logger"
	"github.com/iftihoq/gobank/internal/infrastructure/metrics"
	"github.com/iftihoq/gobank/internal/infrastructure/notifier"
	"github.com/iftihoq/gobank/internal/infrastructure/postgres"
	"github.com/iftihoq/gobank/internal/infrastructure/redis"
	"github.com/iftihoq/gobank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Database
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	reserveRepo := postgresRepo.NewReserveRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	accountNoGen := postgresRepo.NewAccountNoGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Notifications
	var notify usecase.Notifier
	if cfg.SMTPEnabled {
		notify = notifier.NewSMTPNotifier(notifier.Config{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	} else {
		notify = notifier.NewLogNotifier(log)
	}
	notify = notifier.NewInstrumentedNotifier(notify, m)

	// Use cases
	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, idGen, accountNoGen, notify, log)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, reserveRepo, txnRepo, userRepo, idGen, notify, retrier, log)
	loanUC := usecase.NewLoanUseCase(txManager, accountRepo, reserveRepo, txnRepo, userRepo, idGen, notify, retrier, log)
	reportUC := usecase.NewReportUseCase(txnRepo, accountRepo)
	bankUC := usecase.NewBankUseCase(reserveRepo, cache)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	authHandler := handler.NewAuthHandler(metrics.NewInstrumentedUsers(userUC, m), accountUC, jwtManager)
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(metrics.NewInstrumentedMovements(movementUC, m), reportUC)
	loanHandler := handler.NewLoanHandler(metrics.NewInstrumentedLoans(loanUC, m))
	bankHandler := handler.NewBankHandler(metrics.NewInstrumentedBank(bankUC, m))
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		LoanHandler:        loanHandler,
		BankHandler:        bankHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:             middleware.NewLoggingMiddleware(log),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
