package reconcile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/reconcile"
	"github.com/dweagle/extras/internal/testsupport"
)

func TestFromConfigEndToEnd(t *testing.T) {
	var tmdbCalls atomic.Int32
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tmdbCalls.Add(1)
		switch r.URL.Path {
		case "/search/movie":
			_, _ = w.Write([]byte(`{"results":[{"id":329865,"title":"Arrival","release_date":"2016-11-10"}]}`))
		case "/search/tv":
			_, _ = w.Write([]byte(`{"results":[{"id":95396,"name":"Severance","first_air_date":"2022-02-17"}]}`))
		case "/tv/95396/external_ids":
			_, _ = w.Write([]byte(`{"id":95396,"tvdb_id":371980}`))
		default:
			_, _ = w.Write([]byte(`{"results":[]}`))
		}
	}))
	defer tmdbServer.Close()

	radarr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie":
			_, _ = w.Write([]byte(`[{"title":"Dune","year":2021,"tmdbId":438631}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer radarr.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithTMDB(tmdbServer.URL, "key"),
		testsupport.WithRadarr("main", radarr.URL, "k"),
		testsupport.WithSearchCache(),
	)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	testsupport.WriteFile(t, cfg.Paths.InputFile, `{
		"movies": [{"title": "Dune", "year": 2021}, {"title": "Arrival", "year": 2016}],
		"series": [{"title": "Severance", "year": "2022"}]
	}`)

	run := func() *reconcile.Summary {
		runner, closer, err := reconcile.FromConfig(context.Background(), cfg, reconcile.Options{}, logging.NewNop())
		if err != nil {
			t.Fatalf("FromConfig returned error: %v", err)
		}
		defer closer.Close()
		summary, err := runner.Run(context.Background())
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		return summary
	}

	first := run().Total()
	if first.Local != 1 || first.Remote != 2 || first.Unmatched != 0 {
		t.Fatalf("unexpected first run totals %+v", first)
	}
	callsAfterFirst := tmdbCalls.Load()
	if callsAfterFirst != 3 {
		t.Fatalf("expected 3 TMDB calls, got %d", callsAfterFirst)
	}

	second := run().Total()
	if second != first {
		t.Fatalf("second run differs: %+v vs %+v", second, first)
	}
	if tmdbCalls.Load() != callsAfterFirst {
		t.Fatalf("second run should be served from the search cache, calls=%d", tmdbCalls.Load())
	}

	out := testsupport.ReadFile(t, cfg.Paths.OutputFile)
	for _, want := range []string{
		`"tmdbLink": "https://www.themoviedb.org/movie/329865"`,
		`"tvdbLink": "https://www.thetvdb.com/?tab=series&id=371980"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
	}
}

func TestBuildSearcherWithoutKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	searcher, closer, err := reconcile.BuildSearcher(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("BuildSearcher returned error: %v", err)
	}
	defer closer.Close()
	if searcher != nil {
		t.Fatalf("expected nil searcher without api key, got %T", searcher)
	}
}
