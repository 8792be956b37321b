package server

import (
	"sync"
	"time"

	"github.com/mj1618/screen-bridge/internal/model"
)

// panelEntry holds one panel generation with its build time.
type panelEntry struct {
	panel     model.Handle
	elements  []model.AccessibleElement
	timestamp time.Time
}

// PanelCache provides a TTL-based cache for panel element generations.
// Building a generation clears the label store and walks the whole panel,
// so repeated reads within the TTL reuse the last one.
type PanelCache struct {
	mu    sync.Mutex
	entry *panelEntry
	ttl   time.Duration
}

// NewPanelCache creates a new cache. A ttl of 0 disables caching.
func NewPanelCache(ttl time.Duration) *PanelCache {
	return &PanelCache{ttl: ttl}
}

// Elements returns the cached generation for panel if within TTL, otherwise
// builds a fresh one with build.
func (c *PanelCache) Elements(now time.Time, panel model.Handle, build func() []model.AccessibleElement) []model.AccessibleElement {
	if c.ttl == 0 {
		return build()
	}

	c.mu.Lock()
	if e := c.entry; e != nil && e.panel == panel && now.Sub(e.timestamp) < c.ttl {
		elements := e.elements
		c.mu.Unlock()
		return elements
	}
	c.mu.Unlock()

	elements := build()

	c.mu.Lock()
	c.entry = &panelEntry{panel: panel, elements: elements, timestamp: now}
	c.mu.Unlock()

	return elements
}

// Invalidate drops the cached generation.
func (c *PanelCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
