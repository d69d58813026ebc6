package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openqpu/pulsecheck/pkg/task"
	"github.com/openqpu/pulsecheck/pkg/validator"
)

// ErrCacheMiss is returned when no report is cached for a key.
var ErrCacheMiss = errors.New("cache: result not found")

// Config holds result cache configuration
type Config struct {
	Enabled bool

	// Backend selects the cache implementation: "memory" or "redis"
	Backend string

	// TTL is how long a cached report stays valid
	TTL time.Duration

	// MemorySize is the maximum number of reports held by the memory backend
	MemorySize int

	// Redis backend settings
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Backend:    "memory",
		TTL:        15 * time.Minute,
		MemorySize: 1024,
		RedisDB:    -1,
	}
}

// Cache stores validation reports by key.
type Cache interface {
	Get(ctx context.Context, key string) (*validator.Report, error)
	Set(ctx context.Context, key string, report *validator.Report) error
	Close() error
}

// New creates a cache for the configured backend.
func New(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryCache(cfg), nil
	case "redis":
		return NewRedisCache(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// Key derives the cache key for a task validated against a named device
// profile. Tasks with identical content hash to the same key regardless of
// how the submitted JSON was formatted.
func Key(spec *task.Spec, deviceName string) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(deviceName))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
