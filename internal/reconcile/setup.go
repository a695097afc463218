package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/library"
	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/matching"
	"github.com/dweagle/extras/internal/searchcache"
	"github.com/dweagle/extras/internal/services/tmdb"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// BuildSearcher assembles the TMDB provider described by cfg: the HTTP client,
// request pacing and, when enabled, the response cache in front of both. It
// returns a nil searcher when no TMDB key is configured. The closer releases
// the cache database.
func BuildSearcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (tmdb.Searcher, io.Closer, error) {
	if cfg == nil || !cfg.RemoteEnabled() {
		return nil, nopCloser{}, nil
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithTimeout(cfg.TMDBTimeout()))
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("tmdb client: %w", err)
	}
	searcher := Throttle(client, cfg.TMDBRequestDelay())
	if !cfg.SearchCache.Enabled {
		return searcher, nopCloser{}, nil
	}

	store, err := searchcache.Open(ctx, cfg.SearchCache.Path, cfg.SearchCacheTTL(), logger)
	if err != nil {
		logging.WarnWithContext(logger, "search cache unavailable", "search_cache_open_failed",
			logging.String("path", cfg.SearchCache.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check search_cache.path permissions or run 'postermatch cache clear'"),
			logging.String(logging.FieldImpact, "every title is searched on TMDB"))
		return searcher, nopCloser{}, nil
	}
	if removed, err := store.Prune(ctx); err == nil && removed > 0 {
		logger.Debug("pruned expired search cache entries", logging.Int64("removed", removed))
	}
	return searchcache.Wrap(searcher, store, cfg.TMDB.Language, logger), store, nil
}

// FromConfig builds a Runner wired to every source cfg configures.
func FromConfig(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger) (*Runner, io.Closer, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("reconcile: config is required")
	}
	source, err := library.FromConfig(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	searcher, closer, err := BuildSearcher(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if searcher == nil {
		logger.Info("tmdb api key not configured; remote matching disabled",
			logging.String(logging.FieldErrorHint, "set tmdb.api_key or TMDB_API_KEY"))
	}
	resolver := matching.NewResolver(matching.NewRemoteMatcher(searcher, logger), logger)

	if opts.InputPath == "" {
		opts.InputPath = cfg.Paths.InputFile
	}
	if opts.OutputPath == "" {
		opts.OutputPath = cfg.Paths.OutputFile
		if opts.LockPath == "" {
			opts.LockPath = cfg.LockPath()
		}
	}
	runner, err := NewRunner(source, resolver, opts, logger)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return runner, closer, nil
}
