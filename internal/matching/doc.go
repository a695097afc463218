// Package matching resolves a title to a canonical catalog identity.
//
// LocalMatcher performs an exact normalized-title lookup with year tolerance
// against an already fetched library. RemoteMatcher searches TMDB, scores
// every result with the similarity package and accepts a candidate only when
// the media type's acceptance predicate holds; the composite score then
// ranks accepted candidates. Resolver ties the two together: a local hit
// returns immediately and never touches the network.
//
// Failures of the search provider are logged and reported as "no match";
// nothing in this package returns an error for a title that simply could
// not be resolved.
package matching
