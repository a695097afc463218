package searchcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/services/tmdb"
)

// Response kinds stored in the cache.
const (
	KindMovie       = "search_movie"
	KindTV          = "search_tv"
	KindCollection  = "search_collection"
	KindExternalIDs = "tv_external_ids"
	KindCollDetails = "collection_translations"
)

// Searcher serves TMDB responses from the cache and records misses. Cache
// read or write failures fall through to the wrapped searcher.
type Searcher struct {
	inner    tmdb.Searcher
	store    *Store
	language string
	logger   *slog.Logger
}

var _ tmdb.Searcher = (*Searcher)(nil)

// Wrap decorates inner with store. language is the TMDB response language and
// is part of every cache key. A nil store returns inner unchanged.
func Wrap(inner tmdb.Searcher, store *Store, language string, logger *slog.Logger) tmdb.Searcher {
	if inner == nil || store == nil {
		return inner
	}
	return &Searcher{
		inner:    inner,
		store:    store,
		language: strings.ToLower(strings.TrimSpace(language)),
		logger:   logging.NewComponentLogger(logger, "searchcache"),
	}
}

func (s *Searcher) options(extra string) string {
	key := "lang=" + s.language
	if extra != "" {
		key += ";" + extra
	}
	return key
}

func (s *Searcher) SearchMovie(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return cached(ctx, s, KindMovie, query, s.options(opts.CacheKey()), func() (*tmdb.Response, error) {
		return s.inner.SearchMovie(ctx, query, opts)
	})
}

func (s *Searcher) SearchTV(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return cached(ctx, s, KindTV, query, s.options(opts.CacheKey()), func() (*tmdb.Response, error) {
		return s.inner.SearchTV(ctx, query, opts)
	})
}

func (s *Searcher) SearchCollection(ctx context.Context, query string) (*tmdb.Response, error) {
	return cached(ctx, s, KindCollection, query, s.options(""), func() (*tmdb.Response, error) {
		return s.inner.SearchCollection(ctx, query)
	})
}

func (s *Searcher) GetTVExternalIDs(ctx context.Context, showID int64) (*tmdb.ExternalIDs, error) {
	return cached(ctx, s, KindExternalIDs, strconv.FormatInt(showID, 10), s.options(""), func() (*tmdb.ExternalIDs, error) {
		return s.inner.GetTVExternalIDs(ctx, showID)
	})
}

func (s *Searcher) GetCollectionTranslations(ctx context.Context, collectionID int64) (*tmdb.Collection, error) {
	return cached(ctx, s, KindCollDetails, strconv.FormatInt(collectionID, 10), s.options(""), func() (*tmdb.Collection, error) {
		return s.inner.GetCollectionTranslations(ctx, collectionID)
	})
}

func cached[T any](ctx context.Context, s *Searcher, kind, query, options string, fetch func() (*T, error)) (*T, error) {
	logger := logging.WithContext(ctx, s.logger)
	payload, ok, err := s.store.Get(ctx, kind, query, options)
	if err != nil {
		logger.Debug("search cache read failed", logging.String("kind", kind), logging.Error(err))
	}
	if ok {
		var out T
		if err := json.Unmarshal(payload, &out); err == nil {
			logger.Debug("search cache hit", logging.String("kind", kind), logging.String("query", query))
			return &out, nil
		}
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}
	if err := s.store.Put(ctx, kind, query, options, data); err != nil {
		logger.Debug("search cache write failed", logging.String("kind", kind), logging.Error(err))
	}
	return value, nil
}
