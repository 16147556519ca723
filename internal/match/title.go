package match

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PrefixStripper removes a leading series name from titles and
// filenames. Broadcast titles and downloads prepend the series in
// several spellings ("Eisenbahn-Romantik:", "Eisenbahn Romantik -",
// "Eisenbahn_Romantik"), so the matcher compares without it.
type PrefixStripper struct {
	titlePattern    *regexp.Regexp
	filenamePattern *regexp.Regexp
}

var trailingIDPattern = regexp.MustCompile(`[- _]\d{5,}$`)

// NewPrefixStripper compiles patterns for the given series name. An
// empty name yields a stripper that leaves input untouched.
func NewPrefixStripper(series string) *PrefixStripper {
	tokens := strings.FieldsFunc(strings.TrimSpace(series), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	if len(tokens) == 0 {
		return &PrefixStripper{}
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	// Title form: optional dash between tokens, optional ":"/"-" after.
	titleExpr := `(?i)^\s*` + strings.Join(quoted, `\s*[-–—_]?\s*`) + `\s*(?:[:\-–—]\s*)?`
	// Filename form: tokens joined by dash/space/underscore, trailing
	// separators swallowed.
	fileExpr := `(?i)^` + strings.Join(quoted, `[- _]?`) + `[- _]*`
	return &PrefixStripper{
		titlePattern:    regexp.MustCompile(titleExpr),
		filenamePattern: regexp.MustCompile(fileExpr),
	}
}

// StripTitle removes the series name from the front of a title.
func (p *PrefixStripper) StripTitle(s string) string {
	if p == nil || p.titlePattern == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(p.titlePattern.ReplaceAllString(s, ""))
}

// RawTitleFromFilename recovers a human-readable title from a download
// filename: extension and series prefix dropped, trailing numeric
// download ids removed, underscores back to spaces.
func (p *PrefixStripper) RawTitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if p != nil && p.filenamePattern != nil {
		name = p.filenamePattern.ReplaceAllString(name, "")
	}
	name = trailingIDPattern.ReplaceAllString(name, "")
	name = strings.TrimRight(name, " -_")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
