package similarity

import "github.com/pmezard/go-difflib/difflib"

// SequenceRatio returns difflib's 2*M/T ratio over the runes of a and b. The
// pair is put in a canonical order first so the result does not depend on
// argument order.
func SequenceRatio(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
