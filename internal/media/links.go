package media

import "fmt"

const (
	tmdbSiteURL = "https://www.themoviedb.org"
	tvdbSiteURL = "https://www.thetvdb.com"
)

// TMDBLink returns the TMDB page for id, or "" when id is unset.
func TMDBLink(t Type, id int64) string {
	if id <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/%s/%d", tmdbSiteURL, t.LinkSegment(), id)
}

// TVDBLink returns the TheTVDB series page for id, or "" when id is unset.
func TVDBLink(id int64) string {
	if id <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/?tab=series&id=%d", tvdbSiteURL, id)
}
