// Package tmdb provides the TMDB API client used by the remote matcher.
//
// It exposes movie, TV and collection search with an optional release-year
// filter, the TV external-id lookup used to cross-reference TVDB, and the
// collection translations lookup used to accept localized collection names.
// Responses decode into typed structs; every call returns (value, error) and
// leaves the decision about failures to the caller. The Searcher interface
// lets decorators (response cache, rate limiter) and test fakes stand in for
// the HTTP client.
package tmdb
