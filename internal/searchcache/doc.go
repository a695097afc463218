// Package searchcache persists TMDB responses in SQLite so repeated runs over
// the same input document do not repeat identical searches.
//
// Only raw provider responses are cached, keyed by endpoint, normalized query
// and search options. Match decisions are always recomputed. Entries older
// than the configured TTL are treated as misses and removed by Prune.
package searchcache
