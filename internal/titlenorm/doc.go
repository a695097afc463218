// Package titlenorm canonicalizes free-text titles so that punctuation,
// diacritic, and abbreviation variants of the same title compare equal.
//
// Normalize is a pure function of its inputs. The collection-suffix list and
// the alias table are package-level data built once at init.
package titlenorm
