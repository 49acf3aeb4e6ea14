package namedcache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Named cache", func() {
	var (
		cache    *Cache[string, string]
		future   time.Time
		past     time.Time
		noExpiry time.Time
	)

	BeforeEach(func() {
		cache = NewRegistry[string, string](Options[string, string]{}).Cache("test")
		future = time.Now().Add(time.Hour)
		past = time.Now().Add(-time.Minute)
		noExpiry = time.Time{}
	})

	Describe("Entry expiry", func() {
		It("should treat the deadline instant itself as expired", func() {
			instant := time.Now()
			e := &entry[string]{val: "v", deadline: instant}

			Expect(e.expired(instant)).Should(BeTrue())
			Expect(e.expired(instant.Add(-time.Nanosecond))).Should(BeFalse())
			Expect(e.expired(instant.Add(time.Nanosecond))).Should(BeTrue())
		})

		It("should never expire an entry with a zero deadline", func() {
			e := &entry[string]{val: "v"}

			Expect(e.expired(time.Now().Add(1000 * time.Hour))).Should(BeFalse())
		})
	})

	Describe("Get and Put", func() {
		It("should return the stored value before the deadline", func() {
			cache.Put("key", "value", future)

			val, ok := cache.Get("key")
			Expect(ok).Should(BeTrue())
			Expect(val).Should(Equal("value"))
			Expect(cache.Has("key")).Should(BeTrue())
		})

		It("should report absence for an unknown key", func() {
			val, ok := cache.Get("unknown")
			Expect(ok).Should(BeFalse())
			Expect(val).Should(BeEmpty())
			Expect(cache.Has("unknown")).Should(BeFalse())
		})

		It("should report absence once the deadline was reached", func() {
			cache.Put("key", "value", past)

			_, ok := cache.Get("key")
			Expect(ok).Should(BeFalse())
		})

		It("should drop an expired entry on lookup", func() {
			cache.Put("key", "value", past)
			Expect(cache.Size()).Should(Equal(1))

			cache.Get("key")
			Expect(cache.Size()).Should(BeZero())
		})

		It("should keep an entry without deadline until it is removed", func() {
			cache.Put("key", "value", noExpiry)

			Expect(cache.Has("key")).Should(BeTrue())

			deadline, ok := cache.Deadline("key")
			Expect(ok).Should(BeTrue())
			Expect(deadline.IsZero()).Should(BeTrue())
		})

		It("should overwrite an existing value unconditionally", func() {
			cache.Put("key", "old", future)
			cache.Put("key", "new", future)

			val, _ := cache.Get("key")
			Expect(val).Should(Equal("new"))
			Expect(cache.Size()).Should(Equal(1))
		})

		It("should expose the deadline of a live entry", func() {
			cache.Put("key", "value", future)

			deadline, ok := cache.Deadline("key")
			Expect(ok).Should(BeTrue())
			Expect(deadline).Should(BeTemporally("==", future))
		})
	})

	Describe("PutTTL", func() {
		It("should expire the entry after the passed duration", func() {
			cache.PutTTL("key", "value", 50*time.Millisecond)

			Expect(cache.Has("key")).Should(BeTrue())
			Eventually(func() bool {
				return cache.Has("key")
			}, "1s").Should(BeFalse())
		})

		It("should store without expiry on zero duration", func() {
			cache.PutTTL("key", "value", 0)

			deadline, ok := cache.Deadline("key")
			Expect(ok).Should(BeTrue())
			Expect(deadline.IsZero()).Should(BeTrue())
		})
	})

	Describe("PutIfAbsent", func() {
		It("should store the value for an unknown key", func() {
			val, stored := cache.PutIfAbsent("key", "value", future)

			Expect(stored).Should(BeTrue())
			Expect(val).Should(Equal("value"))
		})

		It("should keep a live value and return it", func() {
			cache.Put("key", "existing", future)

			val, stored := cache.PutIfAbsent("key", "other", future)

			Expect(stored).Should(BeFalse())
			Expect(val).Should(Equal("existing"))

			current, _ := cache.Get("key")
			Expect(current).Should(Equal("existing"))
		})

		It("should replace an expired leftover", func() {
			cache.Put("key", "stale", past)

			val, stored := cache.PutIfAbsent("key", "fresh", future)

			Expect(stored).Should(BeTrue())
			Expect(val).Should(Equal("fresh"))

			current, _ := cache.Get("key")
			Expect(current).Should(Equal("fresh"))
		})
	})

	Describe("Remove", func() {
		It("should delete the entry and return its value", func() {
			cache.Put("key", "value", future)

			val, removed := cache.Remove("key")

			Expect(removed).Should(BeTrue())
			Expect(val).Should(Equal("value"))
			Expect(cache.Has("key")).Should(BeFalse())
			Expect(cache.Size()).Should(BeZero())
		})

		It("should report nothing removed for an unknown key", func() {
			val, removed := cache.Remove("unknown")

			Expect(removed).Should(BeFalse())
			Expect(val).Should(BeEmpty())
		})

		It("should report nothing removed for an expired entry", func() {
			cache.Put("key", "value", past)

			val, removed := cache.Remove("key")

			Expect(removed).Should(BeFalse())
			Expect(val).Should(BeEmpty())
			Expect(cache.Size()).Should(BeZero())
		})
	})

	Describe("RemoveValue", func() {
		It("should delete the entry if the value matches", func() {
			cache.Put("key", "value", future)

			val, removed := cache.RemoveValue("key", "value")

			Expect(removed).Should(BeTrue())
			Expect(val).Should(Equal("value"))
			Expect(cache.Has("key")).Should(BeFalse())
		})

		It("should keep the entry if the value differs", func() {
			cache.Put("key", "value", future)

			_, removed := cache.RemoveValue("key", "other")

			Expect(removed).Should(BeFalse())
			Expect(cache.Has("key")).Should(BeTrue())
		})

		It("should report nothing removed for an unknown key", func() {
			_, removed := cache.RemoveValue("unknown", "value")

			Expect(removed).Should(BeFalse())
		})

		It("should delete a matching entry even if it is expired", func() {
			cache.Put("key", "value", past)

			val, removed := cache.RemoveValue("key", "value")

			Expect(removed).Should(BeTrue())
			Expect(val).Should(Equal("value"))
			Expect(cache.Size()).Should(BeZero())
		})

		It("should use the configured equality function", func() {
			folding := NewRegistry[string, string](Options[string, string]{
				Equal: strings.EqualFold,
			}).Cache("folding")

			folding.Put("key", "Value", future)

			val, removed := folding.RemoveValue("key", "vAlUe")

			Expect(removed).Should(BeTrue())
			Expect(val).Should(Equal("Value"))
		})
	})

	Describe("Replace", func() {
		It("should overwrite a live value", func() {
			cache.Put("key", "old", future)

			Expect(cache.Replace("key", "new", future)).Should(BeTrue())

			val, _ := cache.Get("key")
			Expect(val).Should(Equal("new"))
		})

		It("should not create an entry for an unknown key", func() {
			Expect(cache.Replace("unknown", "value", future)).Should(BeFalse())
			Expect(cache.Has("unknown")).Should(BeFalse())
			Expect(cache.Size()).Should(BeZero())
		})

		It("should leave the key absent if the present entry is expired", func() {
			cache.Put("key", "stale", past)

			Expect(cache.Replace("key", "new", future)).Should(BeFalse())
			Expect(cache.Has("key")).Should(BeFalse())
			Expect(cache.Size()).Should(BeZero())
		})
	})

	Describe("CompareAndReplace", func() {
		It("should replace the value if the current one matches", func() {
			cache.Put("key", "old", future)

			ok := cache.CompareAndReplace("key", "old", "new", future)

			Expect(ok).Should(BeTrue())

			val, _ := cache.Get("key")
			Expect(val).Should(Equal("new"))
		})

		It("should keep the value if the current one differs", func() {
			cache.Put("key", "current", future)

			ok := cache.CompareAndReplace("key", "other", "new", future)

			Expect(ok).Should(BeFalse())

			val, _ := cache.Get("key")
			Expect(val).Should(Equal("current"))
		})

		It("should do nothing for an unknown key", func() {
			ok := cache.CompareAndReplace("unknown", "old", "new", future)

			Expect(ok).Should(BeFalse())
			Expect(cache.Has("unknown")).Should(BeFalse())
		})

		It("should apply a fresh deadline on replacement", func() {
			cache.Put("key", "old", time.Now().Add(time.Millisecond))

			ok := cache.CompareAndReplace("key", "old", "new", future)
			Expect(ok).Should(BeTrue())

			Consistently(func() bool {
				return cache.Has("key")
			}, "100ms").Should(BeTrue())
		})
	})

	Describe("All and Len", func() {
		It("should snapshot only the entries that are live at the start", func() {
			cache.Put("live1", "v1", future)
			cache.Put("live2", "v2", noExpiry)
			cache.Put("stale", "v3", past)

			all := cache.All()

			Expect(all).Should(HaveLen(2))
			Expect(all).Should(HaveKeyWithValue("live1", "v1"))
			Expect(all).Should(HaveKeyWithValue("live2", "v2"))
		})

		It("should count only live entries", func() {
			cache.Put("live", "v", future)
			cache.Put("stale", "v", past)

			Expect(cache.Len()).Should(Equal(1))
			Expect(cache.Size()).Should(Equal(2))
		})

		It("should return an empty snapshot for an empty cache", func() {
			Expect(cache.All()).Should(BeEmpty())
			Expect(cache.Len()).Should(BeZero())
		})
	})

	Describe("Hooks", func() {
		var (
			hitCh      chan string
			missCh     chan string
			afterPutCh chan int
		)

		BeforeEach(func() {
			hitCh = make(chan string, 10)
			missCh = make(chan string, 10)
			afterPutCh = make(chan int, 10)

			cache = NewRegistry[string, string](Options[string, string]{
				OnCacheHitFn: func(cacheName string, key string) {
					hitCh <- key
				},
				OnCacheMissFn: func(cacheName string, key string) {
					missCh <- key
				},
				OnAfterPutFn: func(cacheName string, newSize int) {
					afterPutCh <- newSize
				},
			}).Cache("hooked")
		})

		It("should fire the hit hook on a successful get", func() {
			cache.Put("key", "value", future)
			cache.Get("key")

			Expect(hitCh).Should(Receive(Equal("key")))
			Expect(missCh).ShouldNot(Receive())
		})

		It("should fire the miss hook on an unknown key", func() {
			cache.Get("unknown")

			Expect(missCh).Should(Receive(Equal("unknown")))
			Expect(hitCh).ShouldNot(Receive())
		})

		It("should fire the miss hook on an expired entry", func() {
			cache.Put("key", "value", past)
			Expect(afterPutCh).Should(Receive())

			cache.Get("key")

			Expect(missCh).Should(Receive(Equal("key")))
		})

		It("should report the entry count after each put", func() {
			cache.Put("a", "v", future)
			Expect(afterPutCh).Should(Receive(Equal(1)))

			cache.Put("b", "v", future)
			Expect(afterPutCh).Should(Receive(Equal(2)))

			cache.Put("a", "v2", future)
			Expect(afterPutCh).Should(Receive(Equal(2)))
		})
	})

	Describe("Concurrent access", func() {
		It("should store a contended key exactly once", func() {
			target := NewRegistry[string, int](Options[string, int]{}).Cache("contended")

			var (
				wg     sync.WaitGroup
				stored atomic.Int32
			)

			for i := 0; i < 16; i++ {
				wg.Add(1)

				go func(val int) {
					defer GinkgoRecover()
					defer wg.Done()

					if _, ok := target.PutIfAbsent("key", val, time.Time{}); ok {
						stored.Add(1)
					}
				}(i)
			}

			wg.Wait()

			Expect(stored.Load()).Should(Equal(int32(1)))
			Expect(target.Size()).Should(Equal(1))
		})

		It("should keep the entry count consistent under concurrent mutation", func() {
			target := NewRegistry[int, int](Options[int, int]{}).Cache("mutation")

			var wg sync.WaitGroup

			for w := 0; w < 8; w++ {
				wg.Add(1)

				go func(seed int) {
					defer GinkgoRecover()
					defer wg.Done()

					for i := 0; i < 500; i++ {
						key := (seed + i) % 32

						target.Put(key, i, time.Time{})
						target.Get(key)

						if i%3 == 0 {
							target.Remove(key)
						}
					}
				}(w)
			}

			wg.Wait()

			Expect(target.All()).Should(HaveLen(target.Size()))
			Expect(target.Len()).Should(Equal(target.Size()))
		})
	})
})
