// Package reconcile runs one reconciliation pass over an input document.
//
// A run loads the document of unmatched movies, series and collections,
// fetches the reference library for each media type once, resolves every
// title through the matching resolver and writes the enriched document with
// TMDB and TVDB ids and links added. Only one run may write a given output
// file at a time; a second run fails fast with ErrLocked.
package reconcile
