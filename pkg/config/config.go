package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups all application settings, read from environment
// variables (a local .env file is loaded by main before this runs).
type Config struct {
	App     AppConfig
	DB      DBConfig
	Session SessionConfig
	Stock   StockConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env         string // development or production
	Name        string
	Port        string
	CORSOrigins string // comma-separated allowed origins
	LogLevel    string
}

// DBConfig holds PostgreSQL settings. If URL is set it is used as the
// full connection string, otherwise the DSN is built from the parts.
type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// DSN returns the connection string to hand to the driver.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// SessionConfig holds session-cookie settings. TTL bounds both the
// signed token lifetime and the cookie max-age.
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// StockConfig holds the classification thresholds for inventory items.
type StockConfig struct {
	LowStockThreshold float64 // quantity at or below which an item counts as low stock
	ExpiryHorizonDays int     // days ahead within which an item counts as expiring
}

// Load reads configuration from the environment with sensible defaults
// for local development.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "plateguard-backend")
	v.SetDefault("PORT", "3000")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3001")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "plateguard")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")

	v.SetDefault("SESSION_SECRET", "change-me-in-production")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_COOKIE_NAME", "sessionToken")

	v.SetDefault("LOW_STOCK_THRESHOLD", 10.0)
	v.SetDefault("EXPIRY_HORIZON_DAYS", 3)

	env := v.GetString("APP_ENV")

	return &Config{
		App: AppConfig{
			Env:         env,
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			TTL:        time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			Secure:     env == "production",
		},
		Stock: StockConfig{
			LowStockThreshold: v.GetFloat64("LOW_STOCK_THRESHOLD"),
			ExpiryHorizonDays: v.GetInt("EXPIRY_HORIZON_DAYS"),
		},
	}
}
