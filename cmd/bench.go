package cmd

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/log"

	"github.com/mroth/weightedrand"
	"github.com/spf13/cobra"
)

const (
	defaultBenchRequests    = 10000
	defaultBenchConcurrency = 8
	defaultBenchKeys        = 1000
)

func newBenchCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "bench",
		Args:  cobra.NoArgs,
		Short: "Runs a load benchmark against the cache server",
		RunE:  runBenchmark,
	}

	c.Flags().Uint("requests", defaultBenchRequests, "total number of requests to perform")
	c.Flags().Uint("concurrency", defaultBenchConcurrency, "number of concurrent workers")
	c.Flags().String("cache", "bench", "cache to run the benchmark against")
	c.Flags().Uint("keys", defaultBenchKeys, "size of the key space")

	return c
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	requests, _ := cmd.Flags().GetUint("requests")
	concurrency, _ := cmd.Flags().GetUint("concurrency")
	cache, _ := cmd.Flags().GetString("cache")
	keys, _ := cmd.Flags().GetUint("keys")

	if requests == 0 || concurrency == 0 || keys == 0 {
		return errors.New("requests, concurrency and keys must be above zero")
	}

	chooser, err := weightedrand.NewChooser(
		weightedrand.Choice{Item: "get", Weight: 70},
		weightedrand.Choice{Item: "put", Weight: 25},
		weightedrand.Choice{Item: "remove", Weight: 5},
	)
	if err != nil {
		return fmt.Errorf("can't create operation chooser: %w", err)
	}

	log.Log().Infof("benchmarking cache '%s' with %d requests (%d workers, %d keys)",
		cache, requests, concurrency, keys)

	var (
		wg       sync.WaitGroup
		errCount uint64
	)

	perWorker := requests / concurrency

	start := time.Now()

	for worker := uint(0); worker < concurrency; worker++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := uint(0); i < perWorker; i++ {
				op := chooser.Pick().(string)
				key := fmt.Sprintf("key-%d", rand.Intn(int(keys)))

				if err := benchRequest(op, cache, key); err != nil {
					atomic.AddUint64(&errCount, 1)
				}
			}
		}()
	}

	wg.Wait()

	elapsed := time.Since(start)
	performed := perWorker * concurrency

	log.Log().Infof("performed %d requests in %s (%.0f req/s), %d errors",
		performed, elapsed.Round(time.Millisecond), float64(performed)/elapsed.Seconds(), errCount)

	if errCount > 0 {
		return fmt.Errorf("%d requests failed", errCount)
	}

	return nil
}

// benchRequest performs a single operation. Misses and removals of absent
// keys are expected, only transport errors count as failures.
func benchRequest(op, cache, key string) error {
	entryURL := apiURL(entryPath(cache, key))

	var (
		resp *http.Response
		err  error
	)

	switch op {
	case "put":
		req, reqErr := http.NewRequest(http.MethodPut, entryURL+"?ttl=1m", strings.NewReader(key))
		if reqErr != nil {
			return reqErr
		}

		resp, err = http.DefaultClient.Do(req)
	case "remove":
		req, reqErr := http.NewRequest(http.MethodDelete, entryURL, nil)
		if reqErr != nil {
			return reqErr
		}

		resp, err = http.DefaultClient.Do(req)
	default:
		resp, err = http.Get(entryURL)
	}

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)

	return err
}

func entryPath(cache, key string) string {
	path := strings.Replace(api.PathCacheEntry, "{cacheName}", url.PathEscape(cache), 1)

	return strings.Replace(path, "{key}", url.PathEscape(key), 1)
}
