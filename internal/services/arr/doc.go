// Package arr reads library contents from Radarr and Sonarr servers through
// their v3 REST API. Responses are decoded into small typed structs and
// converted to media.LibraryItem values; nothing is written back.
package arr
