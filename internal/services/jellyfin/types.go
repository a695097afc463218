package jellyfin

import (
	"strconv"
	"strings"

	"github.com/dweagle/extras/internal/media"
)

// Item is the subset of a Jellyfin BaseItemDto used for matching.
type Item struct {
	ID             string            `json:"Id"`
	Name           string            `json:"Name"`
	Type           string            `json:"Type"`
	ProductionYear int               `json:"ProductionYear"`
	ProviderIDs    map[string]string `json:"ProviderIds"`
}

// ItemsResponse is one page of GET /Items.
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
	StartIndex       int    `json:"StartIndex"`
}

// LibraryItem converts the Jellyfin item for matching.
func (i Item) LibraryItem() media.LibraryItem {
	return media.LibraryItem{
		Title:       i.Name,
		Year:        i.ProductionYear,
		ExternalID:  i.providerID("Tmdb"),
		SecondaryID: i.providerID("Tvdb"),
	}
}

// providerID looks up a provider id case-insensitively; Jellyfin versions
// disagree on the casing of the keys.
func (i Item) providerID(key string) int64 {
	for k, v := range i.ProviderIDs {
		if !strings.EqualFold(k, key) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id < 0 {
			return 0
		}
		return id
	}
	return 0
}

// itemTypeFor maps a media type to Jellyfin's IncludeItemTypes value.
func itemTypeFor(t media.Type) (string, bool) {
	switch t {
	case media.TypeMovie:
		return "Movie", true
	case media.TypeSeries:
		return "Series", true
	case media.TypeCollection:
		return "BoxSet", true
	default:
		return "", false
	}
}
