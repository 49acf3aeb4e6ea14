package hittrack

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	defaultCapacity        = 10_000
	defaultWindow          = 2 * time.Hour
	defaultThreshold       = 5
	defaultCleanUpInterval = time.Minute
)

// trackKey identifies one entry over all named caches.
type trackKey struct {
	cache string
	key   string
}

type counter struct {
	hits           atomic.Uint32
	expiresEpochMs int64
}

func (c *counter) expired() bool {
	return time.Now().UnixMilli() > c.expiresEpochMs
}

// Tracker counts hits per cache entry within a sliding time window.
//
// Counting is best effort: counters live in a size-bounded LRU, so
// rarely hit keys can be evicted before they reach the threshold, and
// a concurrent first hit may be lost. That is acceptable for the hot
// key report the tracker exists for.
type Tracker struct {
	capacity        uint
	window          time.Duration
	threshold       uint32
	cleanUpInterval time.Duration
	onCountChanged  func(count int)
	lru             *lru.Cache
}

type TrackerOption func(t *Tracker)

// WithCapacity sets the maximal number of tracked entries.
func WithCapacity(capacity uint) TrackerOption {
	return func(t *Tracker) {
		if capacity > 0 {
			t.capacity = capacity
		}
	}
}

// WithWindow sets the time window after which a counter is discarded.
func WithWindow(window time.Duration) TrackerOption {
	return func(t *Tracker) {
		if window > 0 {
			t.window = window
		}
	}
}

// WithThreshold sets the minimal hit count for a key to be reported as hot.
func WithThreshold(threshold uint32) TrackerOption {
	return func(t *Tracker) {
		t.threshold = threshold
	}
}

func WithCleanUpInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.cleanUpInterval = d
		}
	}
}

// WithOnCountChanged will be called with the number of tracked entries
// whenever counters were added or discarded.
func WithOnCountChanged(fn func(count int)) TrackerOption {
	return func(t *Tracker) {
		t.onCountChanged = fn
	}
}

func NewTracker(options ...TrackerOption) *Tracker {
	t := &Tracker{
		capacity:        defaultCapacity,
		window:          defaultWindow,
		threshold:       defaultThreshold,
		cleanUpInterval: defaultCleanUpInterval,
	}

	for _, opt := range options {
		opt(t)
	}

	l, _ := lru.New(int(t.capacity))
	t.lru = l

	go periodicCleanup(t)

	return t
}

func periodicCleanup(t *Tracker) {
	ticker := time.NewTicker(t.cleanUpInterval)
	defer ticker.Stop()

	for {
		<-ticker.C
		t.cleanUp()
	}
}

func (t *Tracker) cleanUp() {
	var expiredKeys []trackKey

	// collect expired counters first, Remove mutates the lru
	for _, k := range t.lru.Keys() {
		if v, ok := t.lru.Peek(k); ok {
			if v.(*counter).expired() {
				expiredKeys = append(expiredKeys, k.(trackKey))
			}
		}
	}

	for _, key := range expiredKeys {
		t.lru.Remove(key)
	}

	if len(expiredKeys) > 0 {
		t.countChanged()
	}
}

// Track counts one hit for key in the named cache. The window starts
// with the first hit and is not extended by later ones.
func (t *Tracker) Track(cache, key string) {
	tk := trackKey{cache: cache, key: key}

	if v, ok := t.lru.Get(tk); ok {
		c := v.(*counter)
		if !c.expired() {
			c.hits.Add(1)

			return
		}
	}

	c := &counter{expiresEpochMs: time.Now().UnixMilli() + t.window.Milliseconds()}
	c.hits.Store(1)

	t.lru.Add(tk, c)
	t.countChanged()
}

// Hot returns all keys of the named cache whose hit count within the
// current window reached the threshold.
func (t *Tracker) Hot(cache string) map[string]uint32 {
	result := make(map[string]uint32)

	for _, k := range t.lru.Keys() {
		tk := k.(trackKey)
		if tk.cache != cache {
			continue
		}

		if v, ok := t.lru.Peek(k); ok {
			c := v.(*counter)
			if hits := c.hits.Load(); !c.expired() && hits >= t.threshold {
				result[tk.key] = hits
			}
		}
	}

	return result
}

// TotalCount returns the number of tracked entries.
func (t *Tracker) TotalCount() int {
	return t.lru.Len()
}

func (t *Tracker) Clear() {
	t.lru.Purge()
	t.countChanged()
}

func (t *Tracker) countChanged() {
	if t.onCountChanged != nil {
		t.onCountChanged(t.lru.Len())
	}
}
