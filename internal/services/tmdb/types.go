package tmdb

// Result represents a single TMDB search match. Movies populate Title and
// ReleaseDate; TV shows and collections populate Name (and FirstAirDate).
type Result struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
}

// DisplayTitle returns Title, falling back to Name.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Date returns ReleaseDate, falling back to FirstAirDate.
func (r Result) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// ExternalIDs holds the cross-provider identifiers of a TV show.
type ExternalIDs struct {
	ID     int64  `json:"id"`
	TVDBID int64  `json:"tvdb_id"`
	IMDBID string `json:"imdb_id,omitempty"`
}

// Collection is the collection details payload with translations appended.
type Collection struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Translations Translations `json:"translations"`
}

// Translations wraps the translation list as TMDB nests it.
type Translations struct {
	Translations []Translation `json:"translations"`
}

// Translation is one localized variant of a collection.
type Translation struct {
	ISO31661 string          `json:"iso_3166_1"`
	ISO6391  string          `json:"iso_639_1"`
	Data     TranslationData `json:"data"`
}

// TranslationData carries the localized name. TMDB uses "title" for some
// records and "name" for others.
type TranslationData struct {
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Names returns the canonical name followed by every non-empty translated
// title or name, in response order.
func (c Collection) Names() []string {
	names := make([]string, 0, 1+2*len(c.Translations.Translations))
	if c.Name != "" {
		names = append(names, c.Name)
	}
	for _, tr := range c.Translations.Translations {
		if tr.Data.Title != "" {
			names = append(names, tr.Data.Title)
		}
		if tr.Data.Name != "" {
			names = append(names, tr.Data.Name)
		}
	}
	return names
}
