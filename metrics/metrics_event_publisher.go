package metrics

import (
	"fmt"

	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/util"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterEventListeners registers all metric handlers by the event bus
func RegisterEventListeners() {
	registerCacheEventListeners()
	registerHotKeyEventListeners()
	registerOplogEventListeners()
	registerRedisEventListeners()
	registerApplicationEventListeners()
}

func registerCacheEventListeners() {
	hitCount := cacheHitCount()
	missCount := cacheMissCount()
	entryCount := cacheEntryCount()
	sweepRemovedCount := sweepRemovedCount()
	droppedCount := cacheDroppedCount()

	RegisterMetric(hitCount)
	RegisterMetric(missCount)
	RegisterMetric(entryCount)
	RegisterMetric(sweepRemovedCount)
	RegisterMetric(droppedCount)

	subscribe(evt.CacheHit, func(cache string) {
		hitCount.WithLabelValues(cache).Inc()
	})

	subscribe(evt.CacheMiss, func(cache string) {
		missCount.WithLabelValues(cache).Inc()
	})

	subscribe(evt.CacheEntryCountChanged, func(cache string, cnt int) {
		entryCount.WithLabelValues(cache).Set(float64(cnt))
	})

	subscribe(evt.CacheSweepDone, func(removed int) {
		sweepRemovedCount.Add(float64(removed))
	})

	subscribe(evt.CacheDropped, func(_ string) {
		droppedCount.Inc()
	})
}

func cacheHitCount() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoard_cache_hit_count",
			Help: "Number of lookups answered with a live entry",
		}, []string{"cache"},
	)
}

func cacheMissCount() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoard_cache_miss_count",
			Help: "Number of lookups without a live entry",
		}, []string{"cache"},
	)
}

func cacheEntryCount() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hoard_cache_entry_count",
			Help: "Number of entries in the cache",
		}, []string{"cache"},
	)
}

func sweepRemovedCount() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoard_sweep_removed_count",
			Help: "Number of expired entries removed by sweeps",
		},
	)
}

func cacheDroppedCount() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoard_cache_dropped_count",
			Help: "Number of dropped caches",
		},
	)
}

func registerHotKeyEventListeners() {
	hotKeyCount := hotKeyCount()

	RegisterMetric(hotKeyCount)

	subscribe(evt.HotKeyCountChanged, func(cnt int) {
		hotKeyCount.Set(float64(cnt))
	})
}

func hotKeyCount() prometheus.Gauge {
	return prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hoard_hot_key_count",
			Help: "Number of tracked hot key counters",
		},
	)
}

func registerOplogEventListeners() {
	writeCount := oplogWriteCount()

	RegisterMetric(writeCount)

	subscribe(evt.OplogEntryWritten, func(op string) {
		writeCount.WithLabelValues(op).Inc()
	})
}

func oplogWriteCount() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoard_oplog_write_count",
			Help: "Number of written operation log entries",
		}, []string{"op"},
	)
}

func registerRedisEventListeners() {
	publishedCount := redisPublishedCount()
	receivedCount := redisReceivedCount()

	RegisterMetric(publishedCount)
	RegisterMetric(receivedCount)

	subscribe(evt.RedisCachePublished, func(_ string) {
		publishedCount.Inc()
	})

	subscribe(evt.RedisCacheReceived, func(_ string) {
		receivedCount.Inc()
	})
}

func redisPublishedCount() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoard_redis_published_count",
			Help: "Number of cache entries published to redis",
		},
	)
}

func redisReceivedCount() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoard_redis_received_count",
			Help: "Number of cache entries received from redis",
		},
	)
}

func registerApplicationEventListeners() {
	versionInfo := versionNumberGauge()

	RegisterMetric(versionInfo)

	subscribe(evt.ApplicationStarted, func(version, buildTime string) {
		versionInfo.WithLabelValues(version, buildTime).Set(1)
	})
}

func versionNumberGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hoard_build_info",
			Help: "Version number and build info",
		}, []string{"version", "build_time"},
	)
}

func subscribe(topic string, fn interface{}) {
	util.FatalOnError(fmt.Sprintf("can't subscribe topic '%s'", topic), evt.Bus().Subscribe(topic, fn))
}
