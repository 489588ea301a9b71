package cache

import (
	"context"
	"time"
)

// ReportKeyPrefix namespaces sales report entries in Redis
const ReportKeyPrefix = "shopdesk:report:"

// ReportCache stores rendered sales reports. Values are JSON encoded, so
// any type that round-trips through encoding/json can be cached.
type ReportCache interface {
	// Get decodes the entry for key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Invalidate drops every cached report and bumps the generation
	Invalidate(ctx context.Context) error

	// Generation changes on every Invalidate. A report computed under one
	// generation must not be stored once it has moved on.
	Generation(ctx context.Context) (int64, error)
}

// NopReportCache never stores anything. Used when report caching is disabled.
type NopReportCache struct{}

// Get always misses
func (NopReportCache) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set discards value
func (NopReportCache) Set(context.Context, string, any, time.Duration) error { return nil }

// Invalidate is a no-op
func (NopReportCache) Invalidate(context.Context) error { return nil }

// Generation is always zero
func (NopReportCache) Generation(context.Context) (int64, error) { return 0, nil }

var _ ReportCache = NopReportCache{}
