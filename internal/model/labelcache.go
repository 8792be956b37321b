package model

import "time"

// DefaultLabelTTL is how long recorded labels are trusted before the whole
// store is dropped.
const DefaultLabelTTL = 60 * time.Second

// LabelCache is a shadow store for label text the host only lets us write.
// The write path (Record) is fed by the host adapter whenever it observes a
// label assignment; the read path (Lookup) is consulted before a direct read.
// Entries are never expired one by one: MaybeClear drops everything once the
// TTL has elapsed since the last clear. It is not safe for concurrent use;
// the bridge touches it from the update tick only.
type LabelCache struct {
	entries   map[Handle]string
	lastClear time.Time
	ttl       time.Duration
}

// NewLabelCache returns an empty store. A ttl of 0 uses DefaultLabelTTL.
func NewLabelCache(ttl time.Duration, now time.Time) *LabelCache {
	if ttl <= 0 {
		ttl = DefaultLabelTTL
	}
	return &LabelCache{
		entries:   make(map[Handle]string),
		lastClear: now,
		ttl:       ttl,
	}
}

// Record stores the last text written to a node's label.
func (c *LabelCache) Record(h Handle, text string) {
	if c == nil {
		return
	}
	if text == "" {
		delete(c.entries, h)
		return
	}
	c.entries[h] = text
}

// Lookup returns the recorded text for h.
func (c *LabelCache) Lookup(h Handle) (string, bool) {
	if c == nil {
		return "", false
	}
	s, ok := c.entries[h]
	return s, ok
}

// MaybeClear drops every entry if the TTL has elapsed since the last clear.
// It reports whether a clear happened. Call it once per tick.
func (c *LabelCache) MaybeClear(now time.Time) bool {
	if c == nil || now.Sub(c.lastClear) < c.ttl {
		return false
	}
	c.Clear(now)
	return true
}

// Clear drops every entry.
func (c *LabelCache) Clear(now time.Time) {
	if c == nil {
		return
	}
	c.entries = make(map[Handle]string)
	c.lastClear = now
}

// Len returns the number of recorded labels.
func (c *LabelCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
