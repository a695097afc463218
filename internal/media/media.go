package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Type identifies the kind of title being reconciled.
type Type string

const (
	TypeMovie      Type = "movie"
	TypeSeries     Type = "series"
	TypeCollection Type = "collection"
)

// ParseType converts user input into a Type. Accepts "tv" and "show" as
// aliases for series.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies":
		return TypeMovie, nil
	case "series", "tv", "show", "shows":
		return TypeSeries, nil
	case "collection", "collections":
		return TypeCollection, nil
	default:
		return "", fmt.Errorf("unknown media type %q", value)
	}
}

// Valid reports whether t is one of the supported media types.
func (t Type) Valid() bool {
	switch t {
	case TypeMovie, TypeSeries, TypeCollection:
		return true
	default:
		return false
	}
}

// IsCollection reports whether titles of this type use collection-suffix stripping.
func (t Type) IsCollection() bool {
	return t == TypeCollection
}

// LinkSegment returns the TMDB website path segment for the type.
func (t Type) LinkSegment() string {
	switch t {
	case TypeSeries:
		return "tv"
	case TypeCollection:
		return "collection"
	default:
		return "movie"
	}
}

// LibraryItem is one entry returned by a library source or a remote search.
// Year and SecondaryID are zero when absent.
type LibraryItem struct {
	Title       string
	Year        int
	ExternalID  int64
	SecondaryID int64
}

// Query is a single title awaiting resolution. Year 0 means unknown.
type Query struct {
	Title string
	Year  int
	Type  Type
}

// Source records which path produced a match.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// MatchResult is the resolved identity of a title.
type MatchResult struct {
	Title       string
	Year        int
	ReleaseDate string
	PrimaryID   int64
	SecondaryID int64
	Source      Source
}

// FromLibraryItem converts a local library hit into a MatchResult.
func FromLibraryItem(item LibraryItem) *MatchResult {
	return &MatchResult{
		Title:       item.Title,
		Year:        item.Year,
		PrimaryID:   item.ExternalID,
		SecondaryID: item.SecondaryID,
		Source:      SourceLocal,
	}
}

// YearFromDate extracts the year from a provider date such as "2021-09-15".
// Returns 0 when the value does not start with four digits.
func YearFromDate(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
