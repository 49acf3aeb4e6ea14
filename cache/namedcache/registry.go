package namedcache

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

const defaultSweepEvery = 100

// Options tunes all caches created by a registry.
//
// The hooks are optional and are invoked synchronously on the calling
// goroutine, so they must be cheap and must not call back into the
// cache.
type Options[K comparable, V any] struct {
	// SweepEvery runs a sweep over all caches on every Nth cache
	// fetch, default 100
	SweepEvery uint64
	// Equal reports whether two values are considered equal. It is
	// used by the conditional remove and replace operations, default
	// reflect.DeepEqual
	Equal func(a, b V) bool
	// OnCacheHitFn will be executed if a live entry was found for the
	// requested key
	OnCacheHitFn func(cacheName string, key K)
	// OnCacheMissFn will be executed if no live entry was found for
	// the requested key
	OnCacheMissFn func(cacheName string, key K)
	// OnAfterPutFn will be executed after an entry was stored, with
	// the current entry count of the cache
	OnAfterPutFn func(cacheName string, newSize int)
	// OnSweptFn will be executed after each sweep, with the count of
	// removed entries
	OnSweptFn func(removed int)
}

// Registry manages named caches with lazy creation.
//
// A single atomic fetch counter amortizes expiry maintenance over
// cache fetches: every SweepEvery-th call to Cache runs a full sweep
// on the calling goroutine.
type Registry[K comparable, V any] struct {
	opts    Options[K, V]
	caches  sync.Map // string -> *Cache[K, V]
	fetches atomic.Uint64
}

// NewRegistry creates an empty registry. Zero option fields fall back
// to their defaults.
func NewRegistry[K comparable, V any](opts Options[K, V]) *Registry[K, V] {
	if opts.SweepEvery == 0 {
		opts.SweepEvery = defaultSweepEvery
	}

	if opts.Equal == nil {
		opts.Equal = func(a, b V) bool {
			return reflect.DeepEqual(a, b)
		}
	}

	return &Registry[K, V]{opts: opts}
}

// Cache returns the cache registered under name, creating it on first
// use. Concurrent callers receive the same instance.
func (r *Registry[K, V]) Cache(name string) *Cache[K, V] {
	if n := r.fetches.Add(1); n%r.opts.SweepEvery == 0 {
		r.Sweep()
	}

	if v, ok := r.caches.Load(name); ok {
		return v.(*Cache[K, V])
	}

	v, _ := r.caches.LoadOrStore(name, newCache(name, r.opts))

	return v.(*Cache[K, V])
}

// Clear drops the whole cache registered under name and reports
// whether it existed. A subsequent fetch recreates it empty.
func (r *Registry[K, V]) Clear(name string) bool {
	_, ok := r.caches.LoadAndDelete(name)

	return ok
}

// Names returns the names of all registered caches.
func (r *Registry[K, V]) Names() []string {
	names := make([]string, 0)

	r.caches.Range(func(k, _ any) bool {
		names = append(names, k.(string))

		return true
	})

	return names
}

// Sweep removes the entries of all caches which are expired at the
// time of the call and returns the count of removed entries.
func (r *Registry[K, V]) Sweep() int {
	now := time.Now()
	removed := 0

	r.caches.Range(func(_, v any) bool {
		removed += v.(*Cache[K, V]).sweep(now)

		return true
	})

	if r.opts.OnSweptFn != nil {
		r.opts.OnSweptFn(removed)
	}

	return removed
}

// TotalCount returns the count of live entries over all caches.
func (r *Registry[K, V]) TotalCount() int {
	count := 0

	r.caches.Range(func(_, v any) bool {
		count += v.(*Cache[K, V]).Len()

		return true
	})

	return count
}
