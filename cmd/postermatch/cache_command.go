package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/searchcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the TMDB search cache",
	}
	cmd.AddCommand(newCacheStatsCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

func openCache(cmd *cobra.Command, ctx *commandContext) (*searchcache.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	return searchcache.Open(cmd.Context(), cfg.SearchCache.Path, cfg.SearchCacheTTL(), logger)
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show search cache entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.SearchCache.Enabled {
				fmt.Fprintln(out, "Search cache is disabled (search_cache.enabled = false)")
			}

			kinds := make([]string, 0, len(stats.ByKind))
			for kind := range stats.ByKind {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			rows := make([][]string, 0, len(kinds))
			for _, kind := range kinds {
				rows = append(rows, []string{kind, strconv.Itoa(stats.ByKind[kind])})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Entries"},
				rows,
				[]string{"Total", strconv.Itoa(stats.Entries)},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Path: %s\n", stats.Path)
			fmt.Fprintf(out, "Expired: %d\n", stats.Expired)
			if !stats.Oldest.IsZero() {
				fmt.Fprintf(out, "Oldest: %s\n", stats.Oldest.Format(time.RFC3339))
				fmt.Fprintf(out, "Newest: %s\n", stats.Newest.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached TMDB responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			if expiredOnly {
				removed, err = store.Prune(cmd.Context())
			} else {
				removed, err = store.Clear(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "Only remove entries older than search_cache.ttl_hours")
	return cmd
}
