package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// ApplicationStarted fires on application start. Parameter: version, build time
	ApplicationStarted = "application:started"

	// CacheHit fires if a key lookup was answered from a cache. Parameter: cache name
	CacheHit = "cache:hit"

	// CacheMiss fires if a key lookup found no live entry. Parameter: cache name
	CacheMiss = "cache:miss"

	// CacheEntryCountChanged fires if the entry count of a cache changed. Parameter: cache name, new count
	CacheEntryCountChanged = "cache:entryCountChanged"

	// CacheSweepDone fires after an expiry sweep over all caches. Parameter: number of removed entries
	CacheSweepDone = "cache:sweepDone"

	// CacheDropped fires if a named cache was dropped from the registry. Parameter: cache name
	CacheDropped = "cache:dropped"

	// HotKeyCountChanged fires if the number of tracked hot keys changed. Parameter: new count
	HotKeyCountChanged = "hotkeys:countChanged"

	// OplogEntryWritten fires if an operation log entry was handed to the writer. Parameter: operation name
	OplogEntryWritten = "oplog:entryWritten"

	// RedisCachePublished fires if a cache entry was published to redis. Parameter: cache name
	RedisCachePublished = "redis:cachePublished"

	// RedisCacheReceived fires if a cache entry was received from redis. Parameter: cache name
	RedisCacheReceived = "redis:cacheReceived"
)

// nolint
var evtBus = EventBus.New()

// Bus returns the global event bus
func Bus() EventBus.Bus {
	return evtBus
}
