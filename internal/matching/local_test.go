package matching_test

import (
	"context"
	"testing"

	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/matching"
	"github.com/dweagle/extras/internal/media"
)

func TestFindLocalYearTolerance(t *testing.T) {
	items := []media.LibraryItem{{Title: "Parasite", Year: 2019, ExternalID: 496243}}

	tests := []struct {
		name  string
		year  int
		match bool
	}{
		{name: "exact", year: 2019, match: true},
		{name: "one year later", year: 2020, match: true},
		{name: "one year earlier", year: 2018, match: true},
		{name: "three years later", year: 2022, match: false},
		{name: "unknown year", year: 0, match: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := matching.FindLocal(media.Query{Title: "Parasite", Year: tt.year, Type: media.TypeMovie}, items)
			if ok != tt.match {
				t.Fatalf("FindLocal year %d = %v, want %v", tt.year, ok, tt.match)
			}
		})
	}
}

func TestFindLocalNormalizesTitles(t *testing.T) {
	items := []media.LibraryItem{
		{Title: "Amelie", Year: 2001, ExternalID: 194},
		{Title: "Spider-Man: Homecoming", Year: 2017, ExternalID: 315635},
	}
	item, ok := matching.FindLocal(media.Query{Title: "Amélie", Year: 2001, Type: media.TypeMovie}, items)
	if !ok || item.ExternalID != 194 {
		t.Fatalf("expected Amelie match, got %+v ok=%v", item, ok)
	}
	item, ok = matching.FindLocal(media.Query{Title: "spider-man homecoming", Year: 2017, Type: media.TypeMovie}, items)
	if !ok || item.ExternalID != 315635 {
		t.Fatalf("expected Homecoming match, got %+v ok=%v", item, ok)
	}
}

func TestFindLocalCollectionsIgnoreYear(t *testing.T) {
	items := []media.LibraryItem{{Title: "The Bourne Collection", ExternalID: 31562}}
	item, ok := matching.FindLocal(media.Query{Title: "The Bourne Saga", Year: 1990, Type: media.TypeCollection}, items)
	if !ok || item.ExternalID != 31562 {
		t.Fatalf("expected collection match regardless of year, got %+v ok=%v", item, ok)
	}
}

func TestFindLocalFirstMatchWins(t *testing.T) {
	items := []media.LibraryItem{
		{Title: "Halloween", Year: 1978, ExternalID: 948},
		{Title: "Halloween", Year: 2018, ExternalID: 424139},
	}
	item, ok := matching.FindLocal(media.Query{Title: "Halloween", Type: media.TypeMovie}, items)
	if !ok || item.ExternalID != 948 {
		t.Fatalf("expected first listed item, got %+v", item)
	}
	item, ok = matching.FindLocal(media.Query{Title: "Halloween", Year: 2018, Type: media.TypeMovie}, items)
	if !ok || item.ExternalID != 424139 {
		t.Fatalf("expected year-compatible item, got %+v", item)
	}
}

func TestFindLocalEmptyInputs(t *testing.T) {
	if _, ok := matching.FindLocal(media.Query{Title: "Dune", Type: media.TypeMovie}, nil); ok {
		t.Fatal("expected no match against empty library")
	}
	items := []media.LibraryItem{{Title: "", Year: 0}}
	if _, ok := matching.FindLocal(media.Query{Title: "  ", Type: media.TypeMovie}, items); ok {
		t.Fatal("blank query must not match blank library titles")
	}
}

func TestLocalMatcherTagsSource(t *testing.T) {
	m := matching.NewLocalMatcher(logging.NewNop())
	items := []media.LibraryItem{{Title: "Breaking Bad", Year: 2008, ExternalID: 1396, SecondaryID: 81189}}
	res, ok := m.Find(context.Background(), media.Query{Title: "Breaking Bad", Year: 2008, Type: media.TypeSeries}, items)
	if !ok {
		t.Fatal("expected local match")
	}
	if res.Source != media.SourceLocal || res.PrimaryID != 1396 || res.SecondaryID != 81189 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestFindLocalBareCollectionSuffix(t *testing.T) {
	items := []media.LibraryItem{{Title: "Trilogy", ExternalID: 9}}
	if item, ok := matching.FindLocal(media.Query{Title: "Collection", Type: media.TypeCollection}, items); ok {
		t.Fatalf("titles that normalize to nothing must not match, got %+v", item)
	}
}
