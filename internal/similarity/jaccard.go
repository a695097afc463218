package similarity

import "strings"

// Jaccard returns |A∩B| / |A∪B| over the whitespace-separated token sets of
// a and b. Duplicate tokens count once. Either set being empty yields 0.
func Jaccard(a, b string) float64 {
	left := tokenSet(a)
	right := tokenSet(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	shared := 0
	for token := range left {
		if _, ok := right[token]; ok {
			shared++
		}
	}
	union := len(left) + len(right) - shared
	return float64(shared) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
