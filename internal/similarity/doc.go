// Package similarity scores pairs of normalized titles.
//
// Score combines a character-level sequence ratio, a token-set Jaccard index
// and a release-year bonus into a composite used to rank remote candidates.
// Whether a candidate is acceptable at all is decided by the caller from the
// individual components; the composite only orders accepted candidates.
package similarity
