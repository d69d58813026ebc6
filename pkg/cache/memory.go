package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/openqpu/pulsecheck/pkg/validator"
)

// MemoryCache is an in-process LRU cache with TTL expiry.
type MemoryCache struct {
	cache *lru.LRU[string, *validator.Report]
}

// NewMemoryCache creates a memory-backed result cache
func NewMemoryCache(cfg Config) *MemoryCache {
	size := cfg.MemorySize
	if size < 16 {
		size = 16
	}

	return &MemoryCache{
		cache: lru.NewLRU[string, *validator.Report](size, nil, cfg.TTL),
	}
}

// Get retrieves a cached report
func (c *MemoryCache) Get(ctx context.Context, key string) (*validator.Report, error) {
	report, ok := c.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return report, nil
}

// Set stores a report
func (c *MemoryCache) Set(ctx context.Context, key string, report *validator.Report) error {
	c.cache.Add(key, report)
	return nil
}

// Len returns the number of cached reports
func (c *MemoryCache) Len() int {
	return c.cache.Len()
}

// Close releases resources
func (c *MemoryCache) Close() error {
	c.cache.Purge()
	return nil
}
