package reconcile

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/dweagle/extras/internal/services/tmdb"
)

// throttledSearcher spaces TMDB requests at least delay apart.
type throttledSearcher struct {
	inner   tmdb.Searcher
	limiter *rate.Limiter
}

// Throttle wraps inner so consecutive calls are spaced by delay. A
// non-positive delay returns inner unchanged.
func Throttle(inner tmdb.Searcher, delay time.Duration) tmdb.Searcher {
	if inner == nil || delay <= 0 {
		return inner
	}
	return &throttledSearcher{inner: inner, limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

func (s *throttledSearcher) SearchMovie(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.SearchMovie(ctx, query, opts)
}

func (s *throttledSearcher) SearchTV(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.SearchTV(ctx, query, opts)
}

func (s *throttledSearcher) SearchCollection(ctx context.Context, query string) (*tmdb.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.SearchCollection(ctx, query)
}

func (s *throttledSearcher) GetTVExternalIDs(ctx context.Context, showID int64) (*tmdb.ExternalIDs, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.GetTVExternalIDs(ctx, showID)
}

func (s *throttledSearcher) GetCollectionTranslations(ctx context.Context, collectionID int64) (*tmdb.Collection, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.GetCollectionTranslations(ctx, collectionID)
}
