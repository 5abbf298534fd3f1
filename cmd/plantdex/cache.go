package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/plantdex/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the plant page cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop every cached plant page",
	Long: `Deletes all cached search and find pages under the configured key prefix.
Run it after reloading the plant catalog; otherwise stale pages are served
until their TTL expires.`,
	Args: cobra.NoArgs,
	RunE: runCacheFlush,
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}

// flushable rejects settings under which a flush cannot reach every key:
// with cluster discovery on, SCAN walks a single node.
func flushable(c config.CacheConfig) error {
	if !c.Enabled {
		return errors.New("cache is disabled in this environment")
	}
	if !c.Standalone {
		return errors.New("cache flush needs cache.standalone: true; in cluster mode SCAN covers one node only")
	}
	return nil
}

func runCacheFlush(cmd *cobra.Command, _ []string) error {
	if err := flushable(cfg.Cache); err != nil {
		return err
	}
	store, cache, err := openCache(cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := cache.Flush(cmd.Context())
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	cmd.Printf("removed %d cached page(s)\n", n)
	return nil
}
