package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/docs"
	"github.com/portfolio-mgmt/pms-wizard/internal/auth"
	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/database"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/handler"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/middleware"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/router"
	"github.com/portfolio-mgmt/pms-wizard/internal/jobs"
	"github.com/portfolio-mgmt/pms-wizard/internal/logger"
	"github.com/portfolio-mgmt/pms-wizard/internal/repository"
	"github.com/portfolio-mgmt/pms-wizard/internal/service"
	"github.com/portfolio-mgmt/pms-wizard/internal/session"
)

// @title PMS Budget Wizard API
// @version 1.0
// @description Budget line wizard sessions, navigation blockers and form rule sets for the portfolio management system

// @contact.name API Support
// @contact.email pms-support@example.gov

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// In development secrets come from the environment, elsewhere from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if !cfg.Auth.Disabled && cfg.Auth.JWTSecret == "" && cfg.Auth.APIKey == "" {
		return fmt.Errorf("auth is enabled but neither a JWT secret nor an API key is configured")
	}
	if cfg.Auth.Disabled {
		log.Warn("Authentication is disabled; every request runs as an anonymous budget team user")
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated", zap.String("driver", cfg.Database.Driver))
	}

	store, sessionPinger, closeStore, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Repositories
	agreementRepo := repository.NewAgreementRepository(db)
	canRepo := repository.NewCANRepository(db)
	scRepo := repository.NewServicesComponentRepository(db)
	lineRepo := repository.NewBudgetLineItemRepository(db)

	// Services
	navigationService := service.NewNavigationService(log)
	wizardService := service.NewWizardService(store, agreementRepo, canRepo, scRepo, lineRepo, navigationService, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, db, sessionPinger, authMiddleware, rateLimiter, router.Handlers{
		Wizard:     handler.NewWizardHandler(wizardService, log),
		Navigation: handler.NewNavigationHandler(navigationService, log),
		Validation: handler.NewValidationHandler(log),
		Reference:  handler.NewReferenceHandler(canRepo, scRepo, log),
	})

	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterSessionSweepJob(
		scheduler,
		wizardService,
		cfg.Session.TTLDuration(),
		log,
		cfg.Session.SweepCron,
		time.Minute,
	); err != nil {
		return fmt.Errorf("failed to register session sweep job: %w", err)
	}
	scheduler.Start()
	log.Info("Scheduler started with session sweep job",
		zap.String("cron_expr", cfg.Session.SweepCron),
		zap.Duration("session_ttl", cfg.Session.TTLDuration()),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		<-scheduler.Stop().Done()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		<-scheduler.Stop().Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// newSessionStore builds the configured wizard session store. The returned
// pinger is nil for the in-process store.
func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, router.Pinger, func(), error) {
	ttl := cfg.Session.TTLDuration()
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := session.NewRedisStore(client, ttl)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Wizard sessions stored in redis",
			zap.String("addr", cfg.Redis.Addr),
			zap.Int("db", cfg.Redis.DB),
			zap.Duration("ttl", ttl),
		)
		return store, store, func() {
			if err := client.Close(); err != nil {
				log.Warn("Error closing redis client", zap.Error(err))
			}
		}, nil
	case "memory", "":
		log.Info("Wizard sessions stored in memory", zap.Duration("ttl", ttl))
		return session.NewMemoryStore(ttl), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
