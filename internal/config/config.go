package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the organization attendance policy.
// All classification thresholds come from here, never from code.
type AttendanceConfig struct {
	ExpectedStartTime     string // "HH:MM" in the organization timezone
	LateThresholdMinutes  int
	HalfDayHoursThreshold float64
	Timezone              string // IANA zone name, e.g. "Asia/Kolkata"
	AutoCloseAfterHours   int    // stale open sessions are closed this long past end of day
}

func Load() (*Config, error) {
	// .env is optional; deployments may set env vars directly
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	lateThreshold, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}
	halfDayHours, err := strconv.ParseFloat(getEnv("HALF_DAY_HOURS_THRESHOLD", "4.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_HOURS_THRESHOLD: %w", err)
	}
	autoCloseAfter, err := strconv.Atoi(getEnv("AUTO_CLOSE_AFTER_HOURS", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CLOSE_AFTER_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ExpectedStartTime:     getEnv("EXPECTED_START_TIME", "09:00"),
		LateThresholdMinutes:  lateThreshold,
		HalfDayHoursThreshold: halfDayHours,
		Timezone:              getEnv("ORG_TIMEZONE", "UTC"),
		AutoCloseAfterHours:   autoCloseAfter,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.Attendance.ExpectedStartTime); err != nil {
		return fmt.Errorf("EXPECTED_START_TIME must be HH:MM: %w", err)
	}
	if c.Attendance.LateThresholdMinutes < 0 {
		return fmt.Errorf("LATE_THRESHOLD_MINUTES must not be negative")
	}
	if c.Attendance.HalfDayHoursThreshold < 0 {
		return fmt.Errorf("HALF_DAY_HOURS_THRESHOLD must not be negative")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ORG_TIMEZONE %q: %w", c.Attendance.Timezone, err)
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
