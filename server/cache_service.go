package server

import (
	"sort"
	"time"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/cache/hittrack"
	"github.com/hoardcache/hoard/cache/namedcache"
	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/oplog"
	"github.com/hoardcache/hoard/redis"
	"github.com/hoardcache/hoard/stats"
	"github.com/hoardcache/hoard/util"
)

const (
	opGet         = "get"
	opHas         = "has"
	opAll         = "all"
	opPut         = "put"
	opPutIfAbsent = "putIfAbsent"
	opRemove      = "remove"
	opReplace     = "replace"
	opDrop        = "drop"
	opSweep       = "sweep"
)

// cacheService implements the API endpoints on top of the cache
// registry. Every operation is counted for the usage statistics,
// mutating operations are additionally written to the oplog and
// published to redis.
type cacheService struct {
	cfg      *config.Config
	registry *namedcache.Registry[string, []byte]
	tracker  *hittrack.Tracker
	oplog    *oplog.Logger
	redis    *redis.Client

	opStats    *stats.Aggregator
	cacheStats *stats.Aggregator
	keyStats   *stats.Aggregator
}

func newCacheService(cfg *config.Config, registry *namedcache.Registry[string, []byte],
	tracker *hittrack.Tracker, oplogger *oplog.Logger, redisClient *redis.Client,
) *cacheService {
	return &cacheService{
		cfg:        cfg,
		registry:   registry,
		tracker:    tracker,
		oplog:      oplogger,
		redis:      redisClient,
		opStats:    stats.NewAggregator("operations"),
		cacheStats: stats.NewAggregator("caches"),
		keyStats:   stats.NewAggregator("keys"),
	}
}

// Caches implements api.CacheControl
func (s *cacheService) Caches() []api.CacheInfo {
	names := s.registry.Names()
	sort.Strings(names)

	result := make([]api.CacheInfo, 0, len(names))

	for _, name := range names {
		result = append(result, api.CacheInfo{
			Name:       name,
			EntryCount: s.registry.Cache(name).Len(),
		})
	}

	return result
}

// Snapshot implements api.CacheControl
func (s *cacheService) Snapshot(cache string) map[string]api.CacheEntry {
	c := s.registry.Cache(cache)

	s.count(opAll, cache, "")

	result := make(map[string]api.CacheEntry)

	for key, value := range c.All() {
		entry := api.CacheEntry{Value: value}

		if deadline, ok := c.Deadline(key); ok && !deadline.IsZero() {
			d := deadline
			entry.Deadline = &d
		}

		result[key] = entry
	}

	return result
}

// Get implements api.CacheControl
func (s *cacheService) Get(cache, key string) ([]byte, bool) {
	value, found := s.registry.Cache(cache).Get(key)

	s.track(cache, key)
	s.count(opGet, cache, key)

	return value, found
}

// Has implements api.CacheControl
func (s *cacheService) Has(cache, key string) bool {
	found := s.registry.Cache(cache).Has(key)

	s.track(cache, key)
	s.count(opHas, cache, key)

	return found
}

// Put implements api.CacheControl
func (s *cacheService) Put(cache, key string, value []byte, deadline time.Time) {
	start := time.Now()
	deadline = s.clampDeadline(deadline)

	s.registry.Cache(cache).Put(key, value, deadline)

	s.logOp(start, opPut, cache, key, true)
	s.count(opPut, cache, key)
	s.publish(cache, key, value, deadline)
}

// PutIfAbsent implements api.CacheControl
func (s *cacheService) PutIfAbsent(cache, key string, value []byte, deadline time.Time) ([]byte, bool) {
	start := time.Now()
	deadline = s.clampDeadline(deadline)

	winner, stored := s.registry.Cache(cache).PutIfAbsent(key, value, deadline)

	s.logOp(start, opPutIfAbsent, cache, key, stored)
	s.count(opPutIfAbsent, cache, key)

	if stored {
		s.publish(cache, key, value, deadline)
	}

	return winner, stored
}

// Remove implements api.CacheControl
func (s *cacheService) Remove(cache, key string, expected []byte) ([]byte, bool) {
	start := time.Now()
	c := s.registry.Cache(cache)

	var (
		value   []byte
		removed bool
	)

	if len(expected) == 0 {
		value, removed = c.Remove(key)
	} else {
		value, removed = c.RemoveValue(key, expected)
	}

	s.logOp(start, opRemove, cache, key, removed)
	s.count(opRemove, cache, key)

	return value, removed
}

// Replace implements api.CacheControl
func (s *cacheService) Replace(cache, key string, old, value []byte, deadline time.Time) bool {
	start := time.Now()
	deadline = s.clampDeadline(deadline)
	c := s.registry.Cache(cache)

	var replaced bool

	if old == nil {
		replaced = c.Replace(key, value, deadline)
	} else {
		replaced = c.CompareAndReplace(key, old, value, deadline)
	}

	s.logOp(start, opReplace, cache, key, replaced)
	s.count(opReplace, cache, key)

	if replaced {
		s.publish(cache, key, value, deadline)
	}

	return replaced
}

// Drop implements api.CacheControl
func (s *cacheService) Drop(cache string) bool {
	start := time.Now()

	dropped := s.registry.Clear(cache)
	if dropped {
		evt.Bus().Publish(evt.CacheDropped, cache)
	}

	s.logOp(start, opDrop, cache, "", dropped)
	s.count(opDrop, cache, "")

	return dropped
}

// Sweep implements api.Sweeper
func (s *cacheService) Sweep() int {
	start := time.Now()

	removed := s.registry.Sweep()

	s.logOp(start, opSweep, "", "", removed > 0)
	s.count(opSweep, "", "")

	return removed
}

// Stats implements api.StatsProvider
func (s *cacheService) Stats() api.StatsResult {
	result := api.StatsResult{
		TopOperations: s.opStats.AggregateResult(),
		TopCaches:     s.cacheStats.AggregateResult(),
		TopKeys:       s.keyStats.AggregateResult(),
	}

	if s.tracker != nil {
		hotKeys := make(map[string]map[string]uint32)

		for _, name := range s.registry.Names() {
			if hot := s.tracker.Hot(name); len(hot) > 0 {
				hotKeys[name] = hot
			}
		}

		if len(hotKeys) > 0 {
			result.HotKeys = hotKeys
		}
	}

	return result
}

// applyRedisCache takes entries published by other instances and stores
// them without counting, logging or republishing.
func (s *cacheService) applyRedisCache(redisClient *redis.Client) {
	for msg := range redisClient.CacheChannel {
		s.registry.Cache(msg.Cache).Put(msg.Key, msg.Value, msg.Deadline)
	}
}

// clampDeadline caps the deadline to the configured maximum entry TTL.
// A zero deadline means no expiry and is capped as well.
func (s *cacheService) clampDeadline(deadline time.Time) time.Time {
	if !s.cfg.Registry.MaxEntryTTL.IsAboveZero() {
		return deadline
	}

	max := time.Now().Add(s.cfg.Registry.MaxEntryTTL.ToDuration())

	if deadline.IsZero() || deadline.After(max) {
		return max
	}

	return deadline
}

func (s *cacheService) count(op, cache, key string) {
	s.opStats.Put(op)
	s.cacheStats.Put(cache)
	s.keyStats.Put(s.maskKey(key))
}

func (s *cacheService) track(cache, key string) {
	if s.tracker != nil {
		s.tracker.Track(cache, key)
	}
}

func (s *cacheService) logOp(start time.Time, op, cache, key string, applied bool) {
	s.oplog.Log(&oplog.Entry{
		Start:      start,
		Op:         op,
		Cache:      cache,
		Key:        s.maskKey(key),
		Applied:    applied,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

func (s *cacheService) publish(cache, key string, value []byte, deadline time.Time) {
	if s.redis != nil {
		s.redis.PublishCache(cache, key, value, deadline)
	}
}

func (s *cacheService) maskKey(key string) string {
	if s.cfg.Log.Privacy {
		return util.Obfuscate(key)
	}

	return key
}
