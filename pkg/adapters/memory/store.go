package memory

import (
	"context"
	"sync"

	"github.com/aretw0/kinetic/pkg/domain"
)

// StyleCache implements ports.StyleCache in memory.
// Safe for concurrent use.
type StyleCache struct {
	data map[string]domain.StyleMap
	mu   sync.RWMutex
}

// NewStyleCache creates a new in-memory style cache.
func NewStyleCache() *StyleCache {
	return &StyleCache{
		data: make(map[string]domain.StyleMap),
	}
}

// Store merges the styles into the element's entry.
func (c *StyleCache) Store(ctx context.Context, elementID string, styles domain.StyleMap) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[elementID]
	if !ok {
		entry = make(domain.StyleMap, len(styles))
		c.data[elementID] = entry
	}
	for k, v := range styles {
		entry[k] = v
	}
	return nil
}

// Load returns a copy of the element's entry so callers can't mutate the cache.
func (c *StyleCache) Load(ctx context.Context, elementID string) (domain.StyleMap, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[elementID].Clone(), nil
}

// Delete forgets the element.
func (c *StyleCache) Delete(ctx context.Context, elementID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, elementID)
	return nil
}

// Len returns the number of cached elements.
func (c *StyleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
