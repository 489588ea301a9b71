package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type reportEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryReportCache implements ReportCache with a process-local map.
// Expired entries are dropped on read and swept on write.
type InMemoryReportCache struct {
	mu         sync.RWMutex
	entries    map[string]reportEntry
	generation int64
	now        func() time.Time
}

// NewInMemoryReportCache creates an empty in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]reportEntry),
		now:     time.Now,
	}
}

// Get decodes the cached value for key into dest
func (c *InMemoryReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores value under key for ttl
func (c *InMemoryReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	now := c.now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = reportEntry{data: data, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops every entry
func (c *InMemoryReportCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]reportEntry)
	c.generation++
	c.mu.Unlock()
	return nil
}

// Generation returns the number of invalidations so far
func (c *InMemoryReportCache) Generation(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

// Size returns the number of entries, expired ones included
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ ReportCache = (*InMemoryReportCache)(nil)
