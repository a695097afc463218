package reconcile

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dweagle/extras/internal/library"
	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/matching"
	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services/tmdb"
)

type staticLibrary map[media.Type][]media.LibraryItem

func (l staticLibrary) Fetch(_ context.Context, t media.Type) []media.LibraryItem { return l[t] }

type idlessProvider struct {
	items []media.LibraryItem
}

func (idlessProvider) Name() string { return "jellyfin1" }

func (idlessProvider) Supports(t media.Type) bool { return t == media.TypeMovie }

func (p idlessProvider) Items(context.Context, media.Type) ([]media.LibraryItem, error) {
	return p.items, nil
}

type recordingSearcher struct {
	mu      sync.Mutex
	years   []int
	movies  map[string][]tmdb.Result
	series  map[string][]tmdb.Result
	colls   map[string][]tmdb.Result
	tvdbIDs map[int64]int64
}

func (s *recordingSearcher) SearchMovie(_ context.Context, q string, o tmdb.SearchOptions) (*tmdb.Response, error) {
	s.record(o.Year)
	return &tmdb.Response{Results: s.movies[q]}, nil
}

func (s *recordingSearcher) SearchTV(_ context.Context, q string, o tmdb.SearchOptions) (*tmdb.Response, error) {
	s.record(o.Year)
	return &tmdb.Response{Results: s.series[q]}, nil
}

func (s *recordingSearcher) SearchCollection(_ context.Context, q string) (*tmdb.Response, error) {
	s.record(0)
	return &tmdb.Response{Results: s.colls[q]}, nil
}

func (s *recordingSearcher) GetTVExternalIDs(_ context.Context, id int64) (*tmdb.ExternalIDs, error) {
	tvdb, ok := s.tvdbIDs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &tmdb.ExternalIDs{ID: id, TVDBID: tvdb}, nil
}

func (s *recordingSearcher) GetCollectionTranslations(context.Context, int64) (*tmdb.Collection, error) {
	return nil, errors.New("not found")
}

func (s *recordingSearcher) record(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.years = append(s.years, year)
}

func TestRunnerEnrichesDocument(t *testing.T) {
	input := writeFile(t, "unmatched.json", `{
		"movies": [
			{"title": "Dune", "year": 2021},
			{"title": "Arrival", "year": 2016},
			{"title": "Nonexistent Film", "year": 1999}
		],
		"collections": [{"title": "Dune Collection", "year": 2021}],
		"series": [{"title": "Breaking Bad", "year": 2008, "missing_seasons": [5]}]
	}`)
	output := filepath.Join(t.TempDir(), "out", "matched.json")

	lib := staticLibrary{
		media.TypeMovie:  {{Title: "Dune", Year: 2021, ExternalID: 438631}},
		media.TypeSeries: {{Title: "Breaking Bad", Year: 2008, ExternalID: 1396, SecondaryID: 81189}},
	}
	searcher := &recordingSearcher{
		movies: map[string][]tmdb.Result{"Arrival": {{ID: 329865, Title: "Arrival", ReleaseDate: "2016-11-10"}}},
		colls:  map[string][]tmdb.Result{"Dune Collection": {{ID: 726871, Name: "Dune Collection"}}},
	}
	resolver := matching.NewResolver(matching.NewRemoteMatcher(searcher, logging.NewNop()), logging.NewNop())

	var progress []Progress
	runner, err := NewRunner(lib, resolver, Options{
		InputPath:  input,
		OutputPath: output,
		OnItem:     func(p Progress) { progress = append(progress, p) },
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	total := summary.Total()
	if total.Total != 5 || total.Local != 2 || total.Remote != 2 || total.Unmatched != 1 {
		t.Fatalf("unexpected totals %+v", total)
	}
	if summary.RunID == "" {
		t.Fatal("expected generated run id")
	}
	if len(progress) != 5 {
		t.Fatalf("expected 5 progress callbacks, got %d", len(progress))
	}

	doc, err := LoadDocument(output)
	if err != nil {
		t.Fatalf("LoadDocument(output) returned error: %v", err)
	}
	if m := doc.Movies[0]; m.TMDBID != 438631 || m.MatchSource != "local" {
		t.Fatalf("unexpected Dune %+v", m)
	}
	if m := doc.Movies[1]; m.TMDBID != 329865 || m.MatchSource != "remote" {
		t.Fatalf("unexpected Arrival %+v", m)
	}
	if m := doc.Movies[2]; m.Matched() || m.TMDBLink != "" {
		t.Fatalf("unexpected unmatched film %+v", m)
	}
	if c := doc.Collections[0]; c.TMDBID != 726871 || c.TMDBLink != "https://www.themoviedb.org/collection/726871" {
		t.Fatalf("unexpected collection %+v", c)
	}
	if s := doc.Series[0]; s.TVDBID != 81189 || len(s.MissingSeasons) != 1 {
		t.Fatalf("unexpected series %+v", s)
	}

	// movie searches: Arrival (2016) and the unmatched film (1999); collection search: always 0.
	want := []int{2016, 1999, 0}
	if len(searcher.years) != len(want) {
		t.Fatalf("unexpected search calls %v", searcher.years)
	}
	for i := range want {
		if searcher.years[i] != want[i] {
			t.Fatalf("search %d year = %d, want %d", i, searcher.years[i], want[i])
		}
	}
}

func TestRunnerDryRunLeavesOutputAbsent(t *testing.T) {
	input := writeFile(t, "in.json", `{"movies":[{"title":"Dune","year":2021}]}`)
	output := filepath.Join(t.TempDir(), "out.json")
	resolver := matching.NewResolver(nil, logging.NewNop())
	runner, err := NewRunner(staticLibrary{}, resolver, Options{InputPath: input, OutputPath: output, DryRun: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Total().Unmatched != 1 {
		t.Fatalf("unexpected summary %+v", summary.Total())
	}
	if _, err := LoadDocument(output); err == nil {
		t.Fatal("dry run must not write the output document")
	}
}

func TestRunnerRejectsConcurrentRun(t *testing.T) {
	input := writeFile(t, "in.json", `{"movies":[]}`)
	output := filepath.Join(t.TempDir(), "out.json")

	held, err := acquireOutputLock(output + ".lock")
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	defer held.release()

	runner, err := NewRunner(staticLibrary{}, matching.NewResolver(nil, logging.NewNop()), Options{InputPath: input, OutputPath: output}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunnerCancelled(t *testing.T) {
	input := writeFile(t, "in.json", `{"movies":[{"title":"Dune"}]}`)
	output := filepath.Join(t.TempDir(), "out.json")
	runner, err := NewRunner(staticLibrary{}, matching.NewResolver(nil, logging.NewNop()), Options{InputPath: input, OutputPath: output}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}

func TestRunnerMissingInput(t *testing.T) {
	dir := t.TempDir()
	runner, err := NewRunner(nil, matching.NewResolver(nil, logging.NewNop()), Options{
		InputPath:  filepath.Join(dir, "missing.json"),
		OutputPath: filepath.Join(dir, "out.json"),
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	inner := &recordingSearcher{}
	searcher := Throttle(inner, 30*time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := searcher.SearchMovie(context.Background(), "x", tmdb.SearchOptions{}); err != nil {
			t.Fatalf("SearchMovie returned error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected calls to be spaced, took %v", elapsed)
	}
	if Throttle(inner, 0) != tmdb.Searcher(inner) {
		t.Fatal("zero delay should return the inner searcher")
	}
}

func TestThrottleHonoursCancellation(t *testing.T) {
	searcher := Throttle(&recordingSearcher{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := searcher.SearchTV(ctx, "x", tmdb.SearchOptions{}); err != nil {
		t.Fatalf("first call should pass immediately: %v", err)
	}
	cancel()
	if _, err := searcher.SearchTV(ctx, "x", tmdb.SearchOptions{}); err == nil {
		t.Fatal("expected error once context is cancelled")
	}
}

func TestRunnerSearchesRemotelyWhenLibraryEntryHasNoID(t *testing.T) {
	input := writeFile(t, "unmatched.json", `{"movies": [{"title": "Arrival", "year": 2016}]}`)
	output := filepath.Join(t.TempDir(), "matched.json")

	lib := library.NewSource([]library.Provider{idlessProvider{items: []media.LibraryItem{{Title: "Arrival", Year: 2016}}}}, logging.NewNop())
	searcher := &recordingSearcher{
		movies: map[string][]tmdb.Result{"Arrival": {{ID: 329865, Title: "Arrival", ReleaseDate: "2016-11-10"}}},
	}
	resolver := matching.NewResolver(matching.NewRemoteMatcher(searcher, logging.NewNop()), logging.NewNop())
	runner, err := NewRunner(lib, resolver, Options{InputPath: input, OutputPath: output}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	total := summary.Total()
	if total.Local != 0 || total.Remote != 1 || total.Unmatched != 0 {
		t.Fatalf("unexpected totals %+v", total)
	}
	if len(searcher.years) != 1 {
		t.Fatalf("expected one tmdb search, got %d", len(searcher.years))
	}
	doc, err := LoadDocument(output)
	if err != nil {
		t.Fatalf("LoadDocument(output) returned error: %v", err)
	}
	if m := doc.Movies[0]; m.TMDBID != 329865 || m.MatchSource != "remote" {
		t.Fatalf("unexpected Arrival %+v", m)
	}
}
