package cache

import (
	"context"
	"sync"

	"github.com/truthlens/backend/internal/domain"
)

// DefaultCapacity is used when no capacity is configured.
const DefaultCapacity = 100

// FIFOCache is a thread-safe bounded analysis cache with insertion-order
// eviction. Analyses are immutable value objects, so entries are shared by
// reference without copying.
type FIFOCache struct {
	capacity int
	data     map[string]*domain.ProductAnalysis
	order    []string
	mutex    sync.RWMutex
}

// NewFIFOCache creates a FIFO cache with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewFIFOCache(capacity int) *FIFOCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FIFOCache{
		capacity: capacity,
		data:     make(map[string]*domain.ProductAnalysis, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get retrieves a cached analysis.
func (c *FIFOCache) Get(ctx context.Context, key string) (*domain.ProductAnalysis, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	analysis, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}
	return analysis, nil
}

// Set stores an analysis, evicting the oldest entry when full. Storing an
// existing key refreshes the value without changing its insertion position.
func (c *FIFOCache) Set(ctx context.Context, key string, analysis *domain.ProductAnalysis) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; exists {
		c.data[key] = analysis
		return nil
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}

	c.data[key] = analysis
	c.order = append(c.order, key)
	return nil
}

// Size returns the current number of cached analyses.
func (c *FIFOCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all cached analyses.
func (c *FIFOCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]*domain.ProductAnalysis, c.capacity)
	c.order = c.order[:0]
}
