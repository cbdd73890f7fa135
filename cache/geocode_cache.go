package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

// CachedGeocoder wraps a Geocoder and remembers resolved place names.
// Failed lookups are never cached.
type CachedGeocoder struct {
	source         datasource.Geocoder
	logger         *zap.Logger
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
	now            func() time.Time
}

// cacheEntry is a resolved place with the time it was stored
type cacheEntry struct {
	Coordinates models.Coordinates
	Timestamp   time.Time
}

// NewCachedGeocoder creates a new cached wrapper around a geocoder
func NewCachedGeocoder(source datasource.Geocoder, cacheDuration time.Duration, logger *zap.Logger) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{
		source:        source,
		logger:        logger,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
		now:           time.Now,
	}
}

// Name returns the name of the underlying geocoder with [Cached] suffix
func (c *CachedGeocoder) Name() string {
	return c.source.Name() + " [Cached]"
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Resolve returns cached coordinates for query when fresh, otherwise asks the wrapped geocoder
func (c *CachedGeocoder) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	key := cacheKey(query)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		c.logger.Debug("geocode cache hit",
			zap.String("query", key),
			zap.Duration("age", c.now().Sub(entry.Timestamp).Round(time.Second)),
		)
		return entry.Coordinates, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	c.logger.Debug("geocode cache miss", zap.String("query", key), zap.String("source", c.source.Name()))

	coords, err := c.source.Resolve(ctx, query)
	if err != nil {
		return models.Coordinates{}, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{Coordinates: coords, Timestamp: c.now()}
	c.mutex.Unlock()

	return coords, nil
}

// Purge drops expired entries and returns how many were removed
func (c *CachedGeocoder) Purge() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.cache {
		if c.now().Sub(entry.Timestamp) >= c.cacheDuration {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedGeocoder) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedGeocoder implements the Geocoder interface
var _ datasource.Geocoder = (*CachedGeocoder)(nil)
