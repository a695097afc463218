package logging

import (
	"strconv"
	"strings"
)

// FormatSubject builds the media-type/item/instance subject shown in console
// output, for example "Series · Item #3" or "Movie · radarr1".
func FormatSubject(mediaType string, itemIndex int, instance string) string {
	mediaType = strings.TrimSpace(mediaType)
	instance = strings.TrimSpace(instance)
	parts := make([]string, 0, 3)
	if mediaType != "" {
		parts = append(parts, strings.ToUpper(mediaType[:1])+strings.ToLower(mediaType[1:]))
	}
	if itemIndex > 0 {
		parts = append(parts, "Item #"+strconv.Itoa(itemIndex))
	}
	if instance != "" {
		parts = append(parts, instance)
	}
	return strings.Join(parts, " · ")
}
