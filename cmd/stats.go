package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/log"
	"github.com/hoardcache/hoard/util"

	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Args:  cobra.NoArgs,
		Short: "prints access statistics of the last 24 hours",
		RunE:  printStats,
	}
}

func printStats(_ *cobra.Command, _ []string) error {
	resp, err := http.Get(apiURL(api.PathStats))
	if err != nil {
		return fmt.Errorf("can't execute %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("response NOK, %s %s", resp.Status, string(body))
	}

	var result api.StatsResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("can't parse response %w", err)
	}

	printStatsSection("operations", result.TopOperations)
	printStatsSection("caches", result.TopCaches)
	printStatsSection("keys", result.TopKeys)

	for cache, keys := range result.HotKeys {
		log.Log().Infof("hot keys in '%s':", cache)

		for key, count := range keys {
			log.Log().Infof("%10d : %s", count, key)
		}
	}

	return nil
}

func printStatsSection(name string, values map[string]int) {
	log.Log().Infof("top %s:", name)

	util.IterateValueSorted(values, func(k string, v int) {
		log.Log().Infof("%10d : %s", v, k)
	})
}
