package titlenorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparable form of raw. When isCollection is true,
// collection suffix terms such as "collection" or "trilogy" are removed.
func Normalize(raw string, isCollection bool) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	s := punctuation.Replace(raw)
	s = foldASCII(s)
	// Compatibility forms (fullwidth quotes and colons) fold into ASCII ones.
	s = punctuation.Replace(s)
	s = strings.TrimSpace(strings.ToLower(s))

	if isCollection {
		s = collectionSuffixPattern.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		for strings.Contains(s, "()") {
			s = strings.ReplaceAll(s, "()", "")
		}
		s = strings.TrimSpace(s)
	}

	s = applyAliases(s)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// foldASCII decomposes s and drops everything outside ASCII, which removes
// combining marks along with any rune that has no ASCII decomposition. Chains
// hold buffers, so each call builds its own.
func foldASCII(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(nonASCII)), s)
	if err != nil {
		return s
	}
	return out
}

type segment struct {
	text      string
	separator bool
}

func splitSegments(s string) []segment {
	locs := separatorPattern.FindAllStringIndex(s, -1)
	segments := make([]segment, 0, len(locs)*2+1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			segments = append(segments, segment{text: s[pos:loc[0]]})
		}
		segments = append(segments, segment{text: s[loc[0]:loc[1]], separator: true})
		pos = loc[1]
	}
	if pos < len(s) {
		segments = append(segments, segment{text: s[pos:]})
	}
	return segments
}

func applyAliases(s string) string {
	segments := splitSegments(s)
	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg.separator {
			b.WriteString(aliasSeparator(seg.text))
			continue
		}

		word := strings.ToLower(seg.text)
		if i+1 < len(segments) && strings.HasPrefix(segments[i+1].text, ".") {
			if alias, ok := canonicalAliases[word+"."]; ok {
				b.WriteString(alias)
				rest := segments[i+1].text[1:]
				if rest == "" && i+2 < len(segments) {
					rest = " "
				}
				segments[i+1].text = rest
				continue
			}
		}
		if alias, ok := canonicalAliases[word]; ok {
			b.WriteString(alias)
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// aliasSeparator replaces a symbol alias inside a separator run, keeping the
// surrounding whitespace and padding the replacement so it stays a word.
func aliasSeparator(sep string) string {
	core := strings.TrimSpace(sep)
	if core == "" {
		return sep
	}
	alias, ok := canonicalAliases[strings.ToLower(core)]
	if !ok {
		return sep
	}
	start := strings.Index(sep, core)
	return sep[:start] + " " + alias + " " + sep[start+len(core):]
}
