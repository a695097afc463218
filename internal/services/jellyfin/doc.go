// Package jellyfin reads movies, series and box sets from a Jellyfin server.
//
// Items are fetched page by page through the Items endpoint and converted to
// media.LibraryItem values using the TMDB and TVDB provider ids Jellyfin
// stores for each entry. Entries without a parseable provider id keep a zero
// id and are still usable for title matching.
package jellyfin
