package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database       DatabaseConfig
	App            AppConfig
	JWT            JWTConfig
	Reconciliation ReconciliationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// MaxConns/MinConns bound the pgx pool. The reconciliation batches fan
	// out per-row writes, so the ceiling matters under catch-up load.
	MaxConns int
	MinConns int
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds token verification configuration. Tokens are issued by
// the external auth service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// ReconciliationConfig drives the daily close-out and the startup catch-up.
type ReconciliationConfig struct {
	// Timezone pins every civil-day computation, independent of the server
	// clock's zone.
	Timezone string

	// DefaultCheckoutHour/Minute is the synthetic check-out time of day
	// applied to records missing a check-out.
	DefaultCheckoutHour   int
	DefaultCheckoutMinute int

	// CloseOutHour is the local hour the close-out job fires, targeting the
	// current day. BackstopHour fires the next morning targeting yesterday
	// in case the primary run failed or the process was down.
	CloseOutHour int
	BackstopHour int

	// CatchUpWindowDays is the trailing window scanned once at startup.
	CatchUpWindowDays int

	// RosterRole filters which employees are subject to absence marking.
	RosterRole string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendly"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
	config.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	config.Database.MinConns, err = getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	rec, err := loadReconciliation()
	if err != nil {
		return nil, err
	}
	config.Reconciliation = rec

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadReconciliation() (ReconciliationConfig, error) {
	rec := ReconciliationConfig{
		Timezone:   getEnv("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
		RosterRole: getEnv("ROSTER_ROLE", "EMPLOYEE"),
	}

	var err error
	rec.DefaultCheckoutHour, err = getEnvInt("DEFAULT_CHECKOUT_HOUR", 18)
	if err != nil {
		return rec, err
	}
	rec.DefaultCheckoutMinute, err = getEnvInt("DEFAULT_CHECKOUT_MINUTE", 0)
	if err != nil {
		return rec, err
	}
	rec.CloseOutHour, err = getEnvInt("CLOSE_OUT_HOUR", 23)
	if err != nil {
		return rec, err
	}
	rec.BackstopHour, err = getEnvInt("BACKSTOP_HOUR", 8)
	if err != nil {
		return rec, err
	}
	rec.CatchUpWindowDays, err = getEnvInt("CATCH_UP_WINDOW_DAYS", 7)
	if err != nil {
		return rec, err
	}
	return rec, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns < 1 || c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("DB_MIN_CONNS must be at least 1 and no greater than DB_MAX_CONNS")
	}
	rec := c.Reconciliation
	if rec.DefaultCheckoutHour < 0 || rec.DefaultCheckoutHour > 23 {
		return fmt.Errorf("DEFAULT_CHECKOUT_HOUR must be between 0 and 23")
	}
	if rec.DefaultCheckoutMinute < 0 || rec.DefaultCheckoutMinute > 59 {
		return fmt.Errorf("DEFAULT_CHECKOUT_MINUTE must be between 0 and 59")
	}
	if rec.CloseOutHour < 0 || rec.CloseOutHour > 23 {
		return fmt.Errorf("CLOSE_OUT_HOUR must be between 0 and 23")
	}
	if rec.BackstopHour < 0 || rec.BackstopHour > 23 {
		return fmt.Errorf("BACKSTOP_HOUR must be between 0 and 23")
	}
	if rec.CatchUpWindowDays < 1 {
		return fmt.Errorf("CATCH_UP_WINDOW_DAYS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
