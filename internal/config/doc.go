// Package config loads, normalizes, and validates postermatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY, RADARR_URL/RADARR_API_KEY, SONARR_URL/SONARR_API_KEY and
// JELLYFIN_URL/JELLYFIN_API_KEY. Absent credentials are not errors: the
// corresponding library source or remote search is simply skipped.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
