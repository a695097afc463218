package searchcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/services/tmdb"
)

type countingSearcher struct {
	calls int
	err   error
}

func (c *countingSearcher) SearchMovie(_ context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &tmdb.Response{Page: 1, Results: []tmdb.Result{{ID: 438631, Title: query, ReleaseDate: "2021-09-15"}}}, nil
}

func (c *countingSearcher) SearchTV(context.Context, string, tmdb.SearchOptions) (*tmdb.Response, error) {
	c.calls++
	return &tmdb.Response{}, nil
}

func (c *countingSearcher) SearchCollection(context.Context, string) (*tmdb.Response, error) {
	c.calls++
	return &tmdb.Response{}, nil
}

func (c *countingSearcher) GetTVExternalIDs(_ context.Context, showID int64) (*tmdb.ExternalIDs, error) {
	c.calls++
	return &tmdb.ExternalIDs{ID: showID, TVDBID: 81189}, nil
}

func (c *countingSearcher) GetCollectionTranslations(_ context.Context, id int64) (*tmdb.Collection, error) {
	c.calls++
	return &tmdb.Collection{ID: id, Name: "Dune Collection"}, nil
}

func TestSearcherServesRepeatsFromCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingSearcher{}
	searcher := Wrap(inner, openTestStore(t, time.Hour), "en-US", logging.NewNop())

	for i := 0; i < 3; i++ {
		resp, err := searcher.SearchMovie(ctx, "Dune", tmdb.SearchOptions{Year: 2021})
		if err != nil {
			t.Fatalf("SearchMovie returned error: %v", err)
		}
		if len(resp.Results) != 1 || resp.Results[0].ID != 438631 {
			t.Fatalf("unexpected response %+v", resp)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.calls)
	}

	if _, err := searcher.SearchMovie(ctx, "Dune", tmdb.SearchOptions{Year: 1984}); err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("different year should miss the cache, calls=%d", inner.calls)
	}

	for i := 0; i < 2; i++ {
		ids, err := searcher.GetTVExternalIDs(ctx, 1396)
		if err != nil || ids.TVDBID != 81189 {
			t.Fatalf("unexpected external ids %+v err=%v", ids, err)
		}
	}
	if inner.calls != 3 {
		t.Fatalf("expected external ids to be cached, calls=%d", inner.calls)
	}
}

func TestSearcherDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingSearcher{err: errors.New("tmdb down")}
	searcher := Wrap(inner, openTestStore(t, time.Hour), "en-US", logging.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := searcher.SearchMovie(ctx, "Dune", tmdb.SearchOptions{}); err == nil {
			t.Fatal("expected upstream error")
		}
	}
	if inner.calls != 2 {
		t.Fatalf("errors must not be cached, calls=%d", inner.calls)
	}
}

func TestWrapWithoutStore(t *testing.T) {
	inner := &countingSearcher{}
	if got := Wrap(inner, nil, "en-US", logging.NewNop()); got != tmdb.Searcher(inner) {
		t.Fatal("expected inner searcher when no store is configured")
	}
}

func TestSearcherKeysByLanguage(t *testing.T) {
	ctx := context.Background()
	inner := &countingSearcher{}
	store := openTestStore(t, time.Hour)
	english := Wrap(inner, store, "en-US", logging.NewNop())
	german := Wrap(inner, store, "de-DE", logging.NewNop())

	for _, searcher := range []tmdb.Searcher{english, german, english, german} {
		if _, err := searcher.SearchMovie(ctx, "Dune", tmdb.SearchOptions{Year: 2021}); err != nil {
			t.Fatalf("SearchMovie returned error: %v", err)
		}
		if _, err := searcher.GetCollectionTranslations(ctx, 726871); err != nil {
			t.Fatalf("GetCollectionTranslations returned error: %v", err)
		}
	}
	if inner.calls != 4 {
		t.Fatalf("expected one fetch per language and kind, got %d", inner.calls)
	}

	if _, err := Wrap(inner, store, " EN-us ", logging.NewNop()).SearchMovie(ctx, "Dune", tmdb.SearchOptions{Year: 2021}); err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if inner.calls != 4 {
		t.Fatalf("language case and spacing should not split the cache, calls=%d", inner.calls)
	}
}
