package titlenorm

import (
	"regexp"
	"strings"
)

// collectionSuffixes are removed from collection titles before comparison.
// Multi-word terms must precede their single-word tails.
var collectionSuffixes = []string{
	"collection", "saga", "trilogy", "series", "anthology", "box set", "set",
	"collezione", "serie", "ciclo", "trilogia", "coffret", "samling", "samle",
	"kokoelma", "kollektion",
}

// canonicalAliases maps abbreviations and symbols to their spelled-out form.
var canonicalAliases = map[string]string{
	"&":    "and",
	"+":    "and",
	"vs.":  "versus",
	"vs":   "versus",
	"ep.":  "episode",
	"ep":   "episode",
	"vol.": "volume",
	"vol":  "volume",
	"pt.":  "part",
	"pt":   "part",
	"dr.":  "doctor",
	"dr":   "doctor",
}

var (
	punctuation = strings.NewReplacer(
		"'", "",
		"`", "",
		"‘", "",
		"’", "",
		"‛", "",
		"ʹ", "",
		"ʻ", "",
		"ʼ", "",
		":", " ",
	)
	collectionSuffixPattern = buildSuffixPattern(collectionSuffixes)
	separatorPattern        = regexp.MustCompile(`\W+`)
	whitespacePattern       = regexp.MustCompile(`\s+`)
)

func buildSuffixPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}
