// @title hoard API
// @description hoard API

// @contact.name hoard@github
// @contact.url https://github.com/hoardcache/hoard

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/
package api

import "time"

const (
	PathCaches            = "/api/caches"
	PathCache             = "/api/caches/{cacheName}"
	PathCacheEntry        = "/api/caches/{cacheName}/entries/{key}"
	PathCacheEntryReplace = "/api/caches/{cacheName}/entries/{key}/replace"
	PathSweep             = "/api/sweep"
	PathStats             = "/api/stats"
)

// CacheInfo describes a named cache
type CacheInfo struct {
	// Cache name
	Name string `json:"name"`
	// Number of live entries
	EntryCount int `json:"entryCount"`
}

// CacheEntry is one entry of a cache snapshot
type CacheEntry struct {
	// Value as base64 encoded bytes
	Value []byte `json:"value"`
	// Absolute expiry time, omitted if the entry never expires
	Deadline *time.Time `json:"deadline,omitempty"`
}

// ReplaceRequest is the request body for a replace operation
type ReplaceRequest struct {
	// Expected current value as base64 encoded bytes, omit for an unconditional replace
	Old []byte `json:"old,omitempty"`
	// New value as base64 encoded bytes
	New []byte `json:"new"`
	// Relative TTL for the new value (Example: 300s, 5m, 1h), mutually exclusive with expires
	TTL string `json:"ttl,omitempty"`
	// Absolute expiry time in RFC 3339 format, mutually exclusive with ttl
	Expires string `json:"expires,omitempty"`
}

// ReplaceResult reports whether a replace operation was applied
type ReplaceResult struct {
	// True if the value was replaced
	Replaced bool `json:"replaced"`
}

// SweepResult is the result of an explicit sweep run
type SweepResult struct {
	// Number of removed entries
	Removed int `json:"removed"`
}

// StatsResult contains the aggregated usage statistics
type StatsResult struct {
	// Top operations of the trailing 24 hours with counts
	TopOperations map[string]int `json:"topOperations"`
	// Top caches of the trailing 24 hours with counts
	TopCaches map[string]int `json:"topCaches"`
	// Top keys of the trailing 24 hours with counts
	TopKeys map[string]int `json:"topKeys"`
	// Keys per cache which exceeded the hit threshold within the tracking window
	HotKeys map[string]map[string]uint32 `json:"hotKeys,omitempty"`
}
