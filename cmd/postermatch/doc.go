// Command postermatch reconciles a document of unmatched titles against the
// configured Radarr, Sonarr and Jellyfin libraries and TMDB.
//
// The match command runs a full reconciliation and writes the enriched
// document. resolve, normalize and library expose the individual stages for
// troubleshooting a single title, and config and cache manage local state.
package main
