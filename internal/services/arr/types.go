package arr

import "github.com/dweagle/extras/internal/media"

// Movie is one entry of GET /api/v3/movie (Radarr).
type Movie struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	TmdbID int64  `json:"tmdbId"`
}

// LibraryItem converts the movie for matching.
func (m Movie) LibraryItem() media.LibraryItem {
	return media.LibraryItem{Title: m.Title, Year: m.Year, ExternalID: m.TmdbID}
}

// Collection is one entry of GET /api/v3/collection (Radarr). Collections
// carry no year.
type Collection struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	TmdbID int64  `json:"tmdbId"`
}

// LibraryItem converts the collection for matching.
func (c Collection) LibraryItem() media.LibraryItem {
	return media.LibraryItem{Title: c.Title, ExternalID: c.TmdbID}
}

// Series is one entry of GET /api/v3/series (Sonarr).
type Series struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	TmdbID int64  `json:"tmdbId"`
	TvdbID int64  `json:"tvdbId"`
}

// LibraryItem converts the series for matching.
func (s Series) LibraryItem() media.LibraryItem {
	return media.LibraryItem{Title: s.Title, Year: s.Year, ExternalID: s.TmdbID, SecondaryID: s.TvdbID}
}
