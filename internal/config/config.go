package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"flashcards/internal/domain"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	API         APIConfig
	Features    domain.Capabilities
	Session     SessionConfig
	HealthAddr  string
	Database    DatabaseConfig
}

// APIConfig holds flashcard backend settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls chat session lifetime
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		},
		HealthAddr: os.Getenv("HEALTH_ADDR"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "flashcards"),
			User:     getEnv("DB_USER", "flashcards"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}
	if _, set := os.LookupEnv("HEALTH_ADDR"); !set {
		cfg.HealthAddr = ":8081"
	}

	var err error
	if cfg.API.Timeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.IdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.SweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Features.Hints, err = getBool("FEATURE_HINTS", true); err != nil {
		return nil, err
	}
	if cfg.Features.Review, err = getBool("FEATURE_REVIEW", true); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
