package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openqpu/pulsecheck/pkg/cache"
	"github.com/openqpu/pulsecheck/pkg/history"
	"github.com/openqpu/pulsecheck/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Device profile configuration
	Profiles ProfileConfig

	// Result cache configuration
	Cache cache.Config

	// Validation history configuration
	History history.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps the size of submitted task documents
	MaxBodyBytes int64

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// ProfileConfig holds device profile registry configuration
type ProfileConfig struct {
	// Dir is the directory of capability documents; empty means only the
	// built-in default profile is served
	Dir string

	// Watch reloads profiles when files in Dir change
	Watch bool
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Profiles:      loadProfileConfig(),
		Cache:         loadCacheConfig(),
		History:       loadHistoryConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PULSECHECK_HOST", "0.0.0.0"),
		Port:            getEnv("PULSECHECK_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PULSECHECK_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PULSECHECK_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PULSECHECK_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PULSECHECK_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    getEnvInt64("PULSECHECK_MAX_BODY_BYTES", 4*1024*1024),
		HealthPort:      getEnv("PULSECHECK_HEALTH_PORT", "9090"),
	}
}

func loadProfileConfig() ProfileConfig {
	return ProfileConfig{
		Dir:   getEnv("PULSECHECK_PROFILE_DIR", ""),
		Watch: getEnvBool("PULSECHECK_PROFILE_WATCH", true),
	}
}

func loadCacheConfig() cache.Config {
	cfg := cache.DefaultConfig()

	cfg.Enabled = getEnvBool("PULSECHECK_CACHE_ENABLED", cfg.Enabled)
	if backend := getEnv("PULSECHECK_CACHE_BACKEND", ""); backend != "" {
		cfg.Backend = backend
	}
	if ttl := getEnvDuration("PULSECHECK_CACHE_TTL", 0); ttl > 0 {
		cfg.TTL = ttl
	}
	if size := getEnvInt("PULSECHECK_CACHE_MEMORY_SIZE", 0); size > 0 {
		cfg.MemorySize = size
	}
	if redisURL := getEnv("PULSECHECK_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("PULSECHECK_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("PULSECHECK_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if poolSize := getEnvInt("PULSECHECK_REDIS_POOL_SIZE", 0); poolSize > 0 {
		cfg.RedisPoolSize = poolSize
	}

	return cfg
}

func loadHistoryConfig() history.Config {
	cfg := history.DefaultConfig()

	cfg.Enabled = getEnvBool("PULSECHECK_HISTORY_ENABLED", cfg.Enabled)
	if driver := getEnv("PULSECHECK_HISTORY_DRIVER", ""); driver != "" {
		cfg.Driver = driver
	}
	if url := getEnv("PULSECHECK_HISTORY_URL", ""); url != "" {
		cfg.URL = url
	}
	if maxConns := getEnvInt("PULSECHECK_HISTORY_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxOpenConns = maxConns
	}
	if idleConns := getEnvInt("PULSECHECK_HISTORY_IDLE_CONNS", 0); idleConns > 0 {
		cfg.MaxIdleConns = idleConns
	}
	if retention := getEnvDuration("PULSECHECK_HISTORY_RETENTION", -1); retention >= 0 {
		cfg.Retention = retention
	}
	if schedule := getEnv("PULSECHECK_HISTORY_CLEANUP_SCHEDULE", ""); schedule != "" {
		cfg.CleanupSchedule = schedule
	}

	return cfg
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLogLevel(getEnv("PULSECHECK_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("PULSECHECK_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("PULSECHECK_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("PULSECHECK_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("PULSECHECK_OTEL_SERVICE_NAME", "pulsecheck"),
		OTelServiceVersion: getEnv("PULSECHECK_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("PULSECHECK_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}

	if c.Cache.Enabled {
		switch c.Cache.Backend {
		case "memory":
		case "redis":
			if c.Cache.RedisURL == "" {
				return fmt.Errorf("redis URL is required for the redis cache backend")
			}
		default:
			return fmt.Errorf("invalid cache backend: %s (must be memory or redis)", c.Cache.Backend)
		}
	}

	if c.History.Enabled {
		switch c.History.Driver {
		case history.DriverPostgres, history.DriverSQLite:
		default:
			return fmt.Errorf("invalid history driver: %s (must be postgres or sqlite3)", c.History.Driver)
		}
		if c.History.URL == "" {
			return fmt.Errorf("history database URL is required when history is enabled")
		}
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
