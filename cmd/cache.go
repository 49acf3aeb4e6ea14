package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/log"

	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "cache operations",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "lists all caches with their entry counts",
		RunE:  listCaches,
	})

	c.AddCommand(&cobra.Command{
		Use:     "flush CACHE",
		Aliases: []string{"clear"},
		Args:    cobra.ExactArgs(1),
		Short:   "drops the given cache with all its entries",
		RunE:    flushCache,
	})

	c.AddCommand(&cobra.Command{
		Use:   "sweep",
		Args:  cobra.NoArgs,
		Short: "removes all expired entries from all caches",
		RunE:  sweepCaches,
	})

	return c
}

func listCaches(_ *cobra.Command, _ []string) error {
	resp, err := http.Get(apiURL(api.PathCaches))
	if err != nil {
		return fmt.Errorf("can't execute %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("response NOK, %s %s", resp.Status, string(body))
	}

	var caches []api.CacheInfo
	if err := json.NewDecoder(resp.Body).Decode(&caches); err != nil {
		return fmt.Errorf("can't parse response %w", err)
	}

	if len(caches) == 0 {
		log.Log().Info("no caches registered")

		return nil
	}

	for _, c := range caches {
		log.Log().Infof("%s: %d entries", c.Name, c.EntryCount)
	}

	return nil
}

func flushCache(_ *cobra.Command, args []string) error {
	path := strings.Replace(api.PathCache, "{cacheName}", url.PathEscape(args[0]), 1)

	req, err := http.NewRequest(http.MethodDelete, apiURL(path), nil)
	if err != nil {
		return fmt.Errorf("can't create request %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("can't execute %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("response NOK, %s %s", resp.Status, string(body))
	}

	log.Log().Info("OK")

	return nil
}

func sweepCaches(_ *cobra.Command, _ []string) error {
	resp, err := http.Post(apiURL(api.PathSweep), "application/json", nil)
	if err != nil {
		return fmt.Errorf("can't execute %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("response NOK, %s %s", resp.Status, string(body))
	}

	var result api.SweepResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("can't parse response %w", err)
	}

	log.Log().Infof("removed %d expired entries", result.Removed)

	return nil
}
