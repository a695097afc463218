package matching_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dweagle/extras/internal/services/tmdb"
)

// fakeSearcher serves canned TMDB responses and counts every call.
type fakeSearcher struct {
	mu sync.Mutex

	movies       map[string][]tmdb.Result
	series       map[string][]tmdb.Result
	collections  map[string][]tmdb.Result
	externalIDs  map[int64]int64
	translations map[int64]*tmdb.Collection
	searchErr    error

	searchCalls      int
	externalCalls    int
	translationCalls int
	lastYear         int
}

func (f *fakeSearcher) SearchMovie(_ context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return f.lookup(f.movies, query, opts.Year)
}

func (f *fakeSearcher) SearchTV(_ context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	return f.lookup(f.series, query, opts.Year)
}

func (f *fakeSearcher) SearchCollection(_ context.Context, query string) (*tmdb.Response, error) {
	return f.lookup(f.collections, query, 0)
}

func (f *fakeSearcher) lookup(table map[string][]tmdb.Result, query string, year int) (*tmdb.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastYear = year
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	results := table[query]
	return &tmdb.Response{Page: 1, Results: results, TotalResults: len(results), TotalPages: 1}, nil
}

func (f *fakeSearcher) GetTVExternalIDs(_ context.Context, showID int64) (*tmdb.ExternalIDs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.externalCalls++
	id, ok := f.externalIDs[showID]
	if !ok {
		return nil, errors.New("external ids unavailable")
	}
	return &tmdb.ExternalIDs{ID: showID, TVDBID: id}, nil
}

func (f *fakeSearcher) GetCollectionTranslations(_ context.Context, id int64) (*tmdb.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translationCalls++
	coll, ok := f.translations[id]
	if !ok {
		return nil, errors.New("translations unavailable")
	}
	return coll, nil
}
