package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию приложения
type Config struct {
	Environment string
	Log         LogConfig
	Server      ServerConfig
	RateLimit   RateLimitConfig
	Check       CheckConfig
	Geo         GeoConfig
	Monitoring  MonitoringConfig
}

// LogConfig конфигурация логирования
type LogConfig struct {
	Level  string
	Format string
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64
}

// RateLimitConfig ограничение частоты запросов к API
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// CheckConfig пороги классификатора и параметры разбора
type CheckConfig struct {
	MaxAccelerationG  float64
	MaxBearingChange  float64
	MaxElapsedSeconds int
	SignedHemispheres bool
	DuplicateFinder   string // "memory" или "sqlite"
}

// GeoConfig конфигурация геопространственных настроек
type GeoConfig struct {
	GeohashPrecision int
}

// MonitoringConfig конфигурация мониторинга
type MonitoringConfig struct {
	MetricsEnabled bool
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Server: ServerConfig{
			Address:      getEnv("SERVER_ADDRESS", ":8090"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxBodyBytes: int64(getInt("MAX_BODY_BYTES", 4<<20)),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat("RATE_LIMIT_RPS", 50),
			Burst: getInt("RATE_LIMIT_BURST", 100),
		},
		Check: CheckConfig{
			MaxAccelerationG:  getFloat("CHECK_MAX_ACCELERATION_G", 2),
			MaxBearingChange:  getFloat("CHECK_MAX_BEARING_CHANGE", 90),
			MaxElapsedSeconds: getInt("CHECK_MAX_ELAPSED_SECONDS", 1),
			SignedHemispheres: getBool("CHECK_SIGNED_HEMISPHERES", false),
			DuplicateFinder:   getEnv("DUPLICATE_FINDER", "memory"),
		},
		Geo: GeoConfig{
			GeohashPrecision: getInt("GEOHASH_PRECISION", 8),
		},
		Monitoring: MonitoringConfig{
			MetricsEnabled: getBool("METRICS_ENABLED", true),
		},
	}

	// Валидация
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("SERVER_ADDRESS is required")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	// Пороги классификатора
	if c.Check.MaxAccelerationG <= 0 {
		return fmt.Errorf("CHECK_MAX_ACCELERATION_G must be positive")
	}

	if c.Check.MaxBearingChange < 0 || c.Check.MaxBearingChange > 180 {
		return fmt.Errorf("CHECK_MAX_BEARING_CHANGE must be between 0 and 180")
	}

	if c.Check.MaxElapsedSeconds < 0 {
		return fmt.Errorf("CHECK_MAX_ELAPSED_SECONDS must not be negative")
	}

	switch c.Check.DuplicateFinder {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("DUPLICATE_FINDER must be memory or sqlite, got %q", c.Check.DuplicateFinder)
	}

	if c.Geo.GeohashPrecision < 1 || c.Geo.GeohashPrecision > 12 {
		return fmt.Errorf("GEOHASH_PRECISION must be between 1 and 12")
	}

	return nil
}

// IsProduction проверяет, запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
