package search

import (
	"context"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"partsearch/internal/domain"
)

// DefaultCacheSize is the number of (category, query) responses kept
const DefaultCacheSize = 256

// CachedProvider wraps a Provider with an LRU of successful responses.
// It lives for the whole process so reopening the overlay and retyping a
// query does not hit the network again.
type CachedProvider struct {
	inner Provider
	cache *lru.Cache[string, []domain.Item]
}

// NewCachedProvider creates a cached provider; size <= 0 uses the default
func NewCachedProvider(inner Provider, size int) *CachedProvider {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, []domain.Item](size)
	return &CachedProvider{
		inner: inner,
		cache: cache,
	}
}

// cacheKey uses the query exactly as the provider receives it
func cacheKey(category, query string, limit int) string {
	return category + "\x00" + query + "\x00" + strconv.Itoa(limit)
}

// Search returns a cached response when present, otherwise asks the
// wrapped provider. Errors are never cached.
func (c *CachedProvider) Search(ctx context.Context, category, query string, limit int) ([]domain.Item, error) {
	key := cacheKey(category, query, limit)
	if items, ok := c.cache.Get(key); ok {
		return items, nil
	}

	items, err := c.inner.Search(ctx, category, query, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, items)
	return items, nil
}

// Len returns the number of cached responses
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}

// Purge drops every cached response
func (c *CachedProvider) Purge() {
	c.cache.Purge()
}
