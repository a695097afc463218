package media_test

import (
	"testing"

	"github.com/dweagle/extras/internal/media"
)

func TestParseType(t *testing.T) {
	cases := map[string]media.Type{
		"movie":       media.TypeMovie,
		" Movies ":    media.TypeMovie,
		"tv":          media.TypeSeries,
		"series":      media.TypeSeries,
		"Collection":  media.TypeCollection,
		"collections": media.TypeCollection,
	}
	for input, want := range cases {
		got, err := media.ParseType(input)
		if err != nil {
			t.Fatalf("ParseType(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseType(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := media.ParseType("album"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestYearFromDate(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2021-09-15", 2021},
		{"1999", 1999},
		{"", 0},
		{"20", 0},
		{"abcd-01-01", 0},
	}
	for _, tc := range tests {
		if got := media.YearFromDate(tc.date); got != tc.want {
			t.Fatalf("YearFromDate(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestLinks(t *testing.T) {
	if got := media.TMDBLink(media.TypeSeries, 1399); got != "https://www.themoviedb.org/tv/1399" {
		t.Fatalf("unexpected series link %q", got)
	}
	if got := media.TMDBLink(media.TypeCollection, 10); got != "https://www.themoviedb.org/collection/10" {
		t.Fatalf("unexpected collection link %q", got)
	}
	if got := media.TMDBLink(media.TypeMovie, 0); got != "" {
		t.Fatalf("expected empty link for unset id, got %q", got)
	}
	if got := media.TVDBLink(121361); got != "https://www.thetvdb.com/?tab=series&id=121361" {
		t.Fatalf("unexpected tvdb link %q", got)
	}
}

func TestFromLibraryItem(t *testing.T) {
	res := media.FromLibraryItem(media.LibraryItem{Title: "Dune", Year: 2021, ExternalID: 438631})
	if res.Source != media.SourceLocal || res.PrimaryID != 438631 || res.Year != 2021 {
		t.Fatalf("unexpected result %+v", res)
	}
}
