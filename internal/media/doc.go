// Package media defines the value types shared by the matcher, the library
// sources and the reconciliation run.
//
// A LibraryItem is one movie, series or collection as reported by a local
// library server or a remote search. Items are plain values; callers collect
// them into ordered slices per media type and never mutate them while
// matching. MatchResult is what the resolver hands back for a title, with the
// provider ids needed to build review links.
package media
