package chain

import (
	"sync"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

type cacheKey struct {
	spot float64
	date string
}

// Cache memoizes built chains keyed by (spot, expiration date), one
// entry per key. Chains are swapped in whole, never mutated, so readers
// always observe cells computed against a single spot price.
type Cache struct {
	mu     sync.RWMutex
	chains map[cacheKey]*models.OptionsChain
}

// NewCache creates an empty chain cache.
func NewCache() *Cache {
	return &Cache{chains: make(map[cacheKey]*models.OptionsChain)}
}

// Get returns the cached chain for (spot, expiration), if present.
func (c *Cache) Get(spot float64, expiration models.Expiration) (*models.OptionsChain, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chain, ok := c.chains[cacheKey{spot: spot, date: dateKey(expiration.Date)}]
	return chain, ok
}

// GetOrBuild returns the cached chain for (spot, expiration) or builds,
// stores and returns it. Concurrent callers may race to build the same
// key; the build is pure, so last write wins harmlessly.
func (c *Cache) GetOrBuild(spot float64, expiration models.Expiration, build func() (*models.OptionsChain, error)) (*models.OptionsChain, error) {
	if chain, ok := c.Get(spot, expiration); ok {
		return chain, nil
	}

	chain, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chains[cacheKey{spot: spot, date: dateKey(expiration.Date)}] = chain
	c.mu.Unlock()
	return chain, nil
}

// Invalidate drops the cached chain for (spot, expiration).
func (c *Cache) Invalidate(spot float64, expiration models.Expiration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.chains, cacheKey{spot: spot, date: dateKey(expiration.Date)})
}

// Clear drops every cached chain.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chains = make(map[cacheKey]*models.OptionsChain)
}

// Len returns the number of cached chains.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chains)
}
