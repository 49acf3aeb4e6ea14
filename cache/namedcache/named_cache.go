package namedcache

import (
	"sync"
	"sync/atomic"
	"time"
)

// entry pairs a value with its absolute expiry deadline. A zero
// deadline marks an entry that never expires.
//
// Entries are immutable once stored: every mutation installs a new
// entry pointer, so pointer identity serves as the CAS token for all
// conditional operations.
type entry[V any] struct {
	val      V
	deadline time.Time
}

// expired reports whether the entry is expired at the passed instant.
// The deadline instant itself already counts as expired.
func (e *entry[V]) expired(now time.Time) bool {
	return !e.deadline.IsZero() && !now.Before(e.deadline)
}

// Cache is a single named key-value cache with per-entry expiry.
//
// All operations are safe for concurrent use without locking:
// conditional mutations are compare-and-swap loops on the stored entry
// pointer. Cross-key operations (All, Len, sweep) are weakly
// consistent, they observe concurrent mutations without blocking them.
type Cache[K comparable, V any] struct {
	name    string
	opts    Options[K, V]
	entries sync.Map // K -> *entry[V]
	size    atomic.Int64
}

func newCache[K comparable, V any](name string, opts Options[K, V]) *Cache[K, V] {
	return &Cache[K, V]{
		name: name,
		opts: opts,
	}
}

// Name returns the name the cache is registered under.
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Get returns the live value stored under key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.lookup(key)
	if !ok {
		c.miss(key)

		var zero V

		return zero, false
	}

	c.hit(key)

	return e.val, true
}

// Has reports whether a live value is stored under key.
func (c *Cache[K, V]) Has(key K) bool {
	_, ok := c.lookup(key)

	return ok
}

// Deadline returns the expiry instant of the live entry stored under
// key. The zero time marks an entry without expiry.
func (c *Cache[K, V]) Deadline(key K) (time.Time, bool) {
	e, ok := c.lookup(key)
	if !ok {
		return time.Time{}, false
	}

	return e.deadline, true
}

// lookup loads the entry for key, lazily dropping it if it is already
// expired. The lazy removal is conditioned on the exact pointer that
// was observed, so a concurrent overwrite always wins.
func (c *Cache[K, V]) lookup(key K) (*entry[V], bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	e := v.(*entry[V])
	if e.expired(time.Now()) {
		if c.entries.CompareAndDelete(key, v) {
			c.size.Add(-1)
		}

		return nil, false
	}

	return e, true
}

// Put unconditionally stores val under key with the passed deadline.
// A zero deadline keeps the entry until it is removed.
func (c *Cache[K, V]) Put(key K, val V, deadline time.Time) {
	e := &entry[V]{val: val, deadline: deadline}

	if _, loaded := c.entries.Swap(key, e); !loaded {
		c.size.Add(1)
	}

	c.afterPut()
}

// PutTTL stores val under key, expiring ttl from now. A zero ttl
// stores the value without expiry.
func (c *Cache[K, V]) PutTTL(key K, val V, ttl time.Duration) {
	var deadline time.Time

	if ttl != 0 {
		deadline = time.Now().Add(ttl)
	}

	c.Put(key, val, deadline)
}

// PutIfAbsent stores val under key only if no live value is present,
// replacing an expired leftover if there is one. It returns the value
// that is current after the call and true if val was stored.
func (c *Cache[K, V]) PutIfAbsent(key K, val V, deadline time.Time) (V, bool) {
	e := &entry[V]{val: val, deadline: deadline}

	for {
		cur, loaded := c.entries.LoadOrStore(key, e)
		if !loaded {
			c.size.Add(1)
			c.afterPut()

			return val, true
		}

		ce := cur.(*entry[V])
		if !ce.expired(time.Now()) {
			return ce.val, false
		}

		// the present entry is expired: take its place, but only if it
		// is still the exact entry that was just examined
		if c.entries.CompareAndSwap(key, cur, e) {
			c.afterPut()

			return val, true
		}
	}
}

// Remove deletes the entry stored under key and returns its value. An
// entry that is present but expired is deleted too, yet reported as no
// removal.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	var zero V

	v, loaded := c.entries.LoadAndDelete(key)
	if !loaded {
		return zero, false
	}

	c.size.Add(-1)

	e := v.(*entry[V])
	if e.expired(time.Now()) {
		return zero, false
	}

	return e.val, true
}

// RemoveValue deletes the entry stored under key only if its value
// equals expected. Expiry is not part of the comparison: a matching
// but already expired entry is removed and returned as well.
func (c *Cache[K, V]) RemoveValue(key K, expected V) (V, bool) {
	var zero V

	for {
		v, ok := c.entries.Load(key)
		if !ok {
			return zero, false
		}

		e := v.(*entry[V])
		if !c.opts.Equal(e.val, expected) {
			return zero, false
		}

		if c.entries.CompareAndDelete(key, v) {
			c.size.Add(-1)

			return e.val, true
		}
	}
}

// Replace stores val under key only if a live value is already
// present. When no live value exists, the key ends up absent: the
// speculatively installed entry is retracted unless a concurrent
// writer already took its place, in which case that fresher value
// stays untouched.
func (c *Cache[K, V]) Replace(key K, val V, deadline time.Time) bool {
	e := &entry[V]{val: val, deadline: deadline}

	prev, loaded := c.entries.Swap(key, e)
	if loaded && !prev.(*entry[V]).expired(time.Now()) {
		c.afterPut()

		return true
	}

	if !loaded {
		c.size.Add(1)
	}

	if c.entries.CompareAndDelete(key, e) {
		c.size.Add(-1)
	}

	return false
}

// CompareAndReplace stores newVal under key only if the current value
// equals oldVal. Expiry is not part of the comparison.
func (c *Cache[K, V]) CompareAndReplace(key K, oldVal, newVal V, deadline time.Time) bool {
	e := &entry[V]{val: newVal, deadline: deadline}

	for {
		cur, ok := c.entries.Load(key)
		if !ok {
			return false
		}

		if !c.opts.Equal(cur.(*entry[V]).val, oldVal) {
			return false
		}

		if c.entries.CompareAndSwap(key, cur, e) {
			c.afterPut()

			return true
		}
	}
}

// All returns a snapshot of all live entries. The snapshot is weakly
// consistent: concurrent mutations may or may not be reflected, and
// expiry is evaluated against the instant the snapshot was started.
func (c *Cache[K, V]) All() map[K]V {
	now := time.Now()
	result := make(map[K]V)

	c.entries.Range(func(k, v any) bool {
		if e := v.(*entry[V]); !e.expired(now) {
			result[k.(K)] = e.val
		}

		return true
	})

	return result
}

// Len returns the count of live entries.
func (c *Cache[K, V]) Len() int {
	now := time.Now()
	count := 0

	c.entries.Range(func(_, v any) bool {
		if !v.(*entry[V]).expired(now) {
			count++
		}

		return true
	})

	return count
}

// Size returns the count of stored entries, including expired ones
// that were not collected yet.
func (c *Cache[K, V]) Size() int {
	return int(c.size.Load())
}

// sweep removes all entries that are expired at the passed instant.
// Each removal is conditioned on the exact entry that was observed as
// expired, so concurrent refreshes are never lost.
func (c *Cache[K, V]) sweep(now time.Time) int {
	removed := 0

	c.entries.Range(func(k, v any) bool {
		if v.(*entry[V]).expired(now) {
			if c.entries.CompareAndDelete(k, v) {
				c.size.Add(-1)
				removed++
			}
		}

		return true
	})

	return removed
}

func (c *Cache[K, V]) hit(key K) {
	if c.opts.OnCacheHitFn != nil {
		c.opts.OnCacheHitFn(c.name, key)
	}
}

func (c *Cache[K, V]) miss(key K) {
	if c.opts.OnCacheMissFn != nil {
		c.opts.OnCacheMissFn(c.name, key)
	}
}

func (c *Cache[K, V]) afterPut() {
	if c.opts.OnAfterPutFn != nil {
		c.opts.OnAfterPutFn(c.name, int(c.size.Load()))
	}
}
