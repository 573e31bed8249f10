package provider

import (
	"fmt"
	"sync"
	"time"

	"EquityScope/internal/model"
)

// CachedProvider wraps a Provider with a TTL'd in-memory cache so a burst
// of refreshes does not hammer the upstream API. Entries are immutable
// once stored and simply expire; there is no invalidation beyond the TTL.
type CachedProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	history map[string]historyEntry
	meta    map[string]metaEntry
}

type historyEntry struct {
	bars     []model.Bar
	storedAt time.Time
}

type metaEntry struct {
	meta     model.Metadata
	storedAt time.Time
}

// NewCachedProvider wraps inner with the given TTL.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		history: make(map[string]historyEntry),
		meta:    make(map[string]metaEntry),
	}
}

func (c *CachedProvider) Name() string { return c.inner.Name() + "+cache" }

func historyKey(symbol, period, interval string) string {
	return fmt.Sprintf("%s|%s|%s", symbol, period, interval)
}

// FetchHistory serves from cache while the entry is fresh. Errors are
// never cached.
func (c *CachedProvider) FetchHistory(symbol, period, interval string) ([]model.Bar, error) {
	key := historyKey(symbol, period, interval)

	c.mu.RLock()
	if e, ok := c.history[key]; ok && c.now().Sub(e.storedAt) < c.ttl {
		c.mu.RUnlock()
		return e.bars, nil
	}
	c.mu.RUnlock()

	bars, err := c.inner.FetchHistory(symbol, period, interval)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.history[key] = historyEntry{bars: bars, storedAt: c.now()}
	c.mu.Unlock()
	return bars, nil
}

// FetchMetadata serves from cache while the entry is fresh.
func (c *CachedProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	c.mu.RLock()
	if e, ok := c.meta[symbol]; ok && c.now().Sub(e.storedAt) < c.ttl {
		c.mu.RUnlock()
		return e.meta, nil
	}
	c.mu.RUnlock()

	meta, err := c.inner.FetchMetadata(symbol)
	if err != nil {
		return model.Metadata{}, err
	}

	c.mu.Lock()
	c.meta[symbol] = metaEntry{meta: meta, storedAt: c.now()}
	c.mu.Unlock()
	return meta, nil
}
