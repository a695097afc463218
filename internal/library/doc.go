// Package library aggregates the reference library from every configured
// Radarr, Sonarr and Jellyfin instance.
//
// Instances are queried in configuration order (Radarr and Sonarr before
// Jellyfin) and their items concatenated. A failing instance is logged and
// skipped so the run continues with whatever the other servers returned.
package library
