package geocode

import (
	"context"
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is an optional persistent cache layer consulted between the LRU and
// the network
type Store interface {
	Lookup(key string) (string, bool, error)
	Insert(key, name string) error
}

// Cache wraps a Geocoder with a size-bounded LRU keyed on coordinates
// rounded to ~100 m, so one network lookup serves every ping in the same
// small area. An optional persistent Store survives process restarts.
type Cache struct {
	inner Geocoder
	lru   *lru.Cache[string, string]
	store Store
}

// NewCache creates a caching geocoder with the given LRU capacity
func NewCache(inner Geocoder, size int, store Store) (*Cache, error) {
	if size <= 0 {
		size = 1024
	}
	l, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}
	return &Cache{inner: inner, lru: l, store: store}, nil
}

// CacheKey rounds a coordinate to 3 decimal places, roughly 100 m
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f,%.3f", lat, lon)
}

// Reverse resolves a place name through the cache layers
func (c *Cache) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	key := CacheKey(lat, lon)

	if name, ok := c.lru.Get(key); ok {
		return name, nil
	}

	if c.store != nil {
		name, ok, err := c.store.Lookup(key)
		if err != nil {
			log.Printf("[Geocode] Cache store lookup failed: %v", err)
		} else if ok {
			c.lru.Add(key, name)
			return name, nil
		}
	}

	name, err := c.inner.Reverse(ctx, lat, lon)
	if err != nil {
		return "", err
	}

	c.lru.Add(key, name)
	if c.store != nil {
		if err := c.store.Insert(key, name); err != nil {
			log.Printf("[Geocode] Cache store insert failed: %v", err)
		}
	}
	return name, nil
}

// Len returns the number of entries held in the LRU
func (c *Cache) Len() int {
	return c.lru.Len()
}
