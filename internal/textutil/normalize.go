package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceCollapser = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Normalize folds a title into the canonical comparison form: sharp s
// becomes "ss", underscores become spaces, the result is lowercased,
// decomposed with NFKD, stripped of combining marks and of every rune
// that is not a letter, digit, or space, and whitespace is collapsed.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "ß", "ss")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ToLower(whitespaceCollapser.Replace(s))
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from NFKD decomposition
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsWholeTokens reports whether query appears in candidate as a
// complete token sequence. Both inputs are expected to be normalized.
// "nonstalbahn" matches inside a longer title, but never as a substring
// of another word.
func ContainsWholeTokens(query, candidate string) bool {
	if query == "" || candidate == "" {
		return false
	}
	return strings.Contains(" "+candidate+" ", " "+query+" ")
}
