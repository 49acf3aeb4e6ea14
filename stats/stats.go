package stats

import (
	"strings"
	"sync"
	"time"

	"github.com/hoardcache/hoard/util"
)

const (
	defaultMaxCount = 50
	retentionHours  = 24
	hourFormat      = "2006010215"
)

// nolint
var now = time.Now

// Aggregator counts string keys in hourly buckets and keeps the
// buckets of the last 24 hours. Reported results are capped to the
// most frequent keys.
type Aggregator struct {
	Name string

	// hour -> ( key -> count )
	hourResults map[string]map[string]int
	stageData   map[string]int
	currentHour string
	maxCount    int
	lock        sync.Mutex
}

// NewAggregator returns a new aggregator with the specified name
func NewAggregator(name string) *Aggregator {
	return NewAggregatorWithMax(name, defaultMaxCount)
}

// NewAggregatorWithMax returns a new aggregator which reports at most
// maxCount keys
func NewAggregatorWithMax(name string, maxCount uint) *Aggregator {
	return &Aggregator{
		Name:        name,
		maxCount:    int(maxCount),
		stageData:   make(map[string]int),
		hourResults: make(map[string]map[string]int),
		currentHour: currentHour(),
	}
}

// Put counts one occurrence of key, blank keys are ignored
func (s *Aggregator) Put(key string) {
	key = strings.TrimSpace(key)
	if len(key) == 0 {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.hourSwitch()
	s.stageData[key]++
}

// AggregateResult sums the hourly buckets, including the current hour,
// and returns the most frequent keys
func (s *Aggregator) AggregateResult() map[string]int {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.hourSwitch()

	result := make(map[string]int)

	for _, hv := range s.hourResults {
		for k, v := range hv {
			result[k] += v
		}
	}

	for k, v := range s.stageData {
		result[k] += v
	}

	return getMaxValues(result, s.maxCount)
}

// returns current date with hour
func currentHour() string {
	return now().Format(hourFormat)
}

// hourSwitch moves the staged counts into their hourly bucket once the
// hour changed and drops buckets outside the retention range. The
// caller must hold the lock.
func (s *Aggregator) hourSwitch() {
	hour := currentHour()
	if hour == s.currentHour {
		return
	}

	s.hourResults[s.currentHour] = getMaxValues(s.stageData, s.maxCount*2)

	for k := range s.hourResults {
		h, _ := time.Parse(hourFormat, k)

		if h.Before(now().Add(-retentionHours * time.Hour)) {
			delete(s.hourResults, k)
		}
	}

	s.currentHour = hour
	s.stageData = make(map[string]int)
}

func getMaxValues(in map[string]int, maxCount int) map[string]int {
	if len(in) <= maxCount {
		return in
	}

	res := make(map[string]int, maxCount)
	i := 0

	util.IterateValueSorted(in, func(k string, v int) {
		if i < maxCount {
			res[k] = v
		}
		i++
	})

	return res
}
