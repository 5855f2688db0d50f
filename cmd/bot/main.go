package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashcards/internal/apiclient"
	"flashcards/internal/config"
	"flashcards/internal/handler"
	"flashcards/internal/health"
	"flashcards/internal/repository/postgres"
	"flashcards/internal/scheduler"
	"flashcards/internal/service"
	"flashcards/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting flashcards bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Bool("hints", cfg.Features.Hints),
		zap.Bool("review", cfg.Features.Review),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories and services
	userRepo := postgres.NewUserRepo(db)
	authService := service.NewAuthService(userRepo, cfg.BotPassword)

	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	clock := session.SystemClock{}
	registry := session.NewRegistry(clock, logger)
	sessionService := service.NewSessionService(registry, api, cfg.Features, clock, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Unhandled bot error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	h := handler.NewHandler(bot, authService, sessionService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	sweeper := scheduler.New(sessionService, logger)
	if err := sweeper.Start(cfg.Session.SweepInterval, cfg.Session.IdleTimeout); err != nil {
		logger.Fatal("Failed to start session sweep", zap.Error(err))
	}

	var healthServer *health.Server
	if cfg.HealthAddr != "" {
		healthServer = health.NewServer(cfg.HealthAddr, sessionService, logger)
		healthServer.Start()
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()
	sweeper.Stop()

	if healthServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := healthServer.Shutdown(ctx); err != nil {
			logger.Warn("Failed to stop health server", zap.Error(err))
		}
		cancel()
	}

	closed := sessionService.CloseAll()
	logger.Info("Bot stopped gracefully", zap.Int("sessions_closed", closed))
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
