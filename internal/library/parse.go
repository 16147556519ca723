package library

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedFile is the metadata recovered from one canonical filename.
type ParsedFile struct {
	Directory     string
	Filename      string
	Path          string
	SizeMiB       float64
	EpisodeCode   string
	BroadcastDate string
	AbsEpisode    int
	Title         string
}

var (
	episodeCodePattern = regexp.MustCompile(`(?i)(S\d{2,4}E\d{1,3})`)
	// The abs token may carry a quality suffix ("890XL"); the leading
	// digits are the number. The final separator tolerates unicode
	// dashes and the broken "89- " variant seen in older renames.
	fallbackAbsPattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b\s*[-–—]\s*(\d+[A-Za-z]{0,8})\s*[-–—]`)
	leadingDigitsPattern = regexp.MustCompile(`^(\d+)`)
)

// Parser parses canonical filenames for a configured series label.
type Parser struct {
	main *regexp.Regexp
}

// NewParser builds a filename parser for the given series label and
// extension, e.g. "Eisenbahn-Romantik" and ".mp4".
func NewParser(seriesLabel, extension string) *Parser {
	label := regexp.QuoteMeta(strings.TrimSpace(seriesLabel))
	ext := regexp.QuoteMeta(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	expr := fmt.Sprintf(
		`^%s\s+(S\d{2,4}E\d{1,3})\s*[-–—]\s*(\d{4}-\d{2}-\d{2})\s*[-–—]\s*(\d+[A-Za-z]{0,8})\s*[-–—]\s*(.+)\.%s$`,
		label, ext,
	)
	return &Parser{main: regexp.MustCompile(expr)}
}

// Parse extracts metadata from a canonical filename. The second
// return is false when the name does not follow the scheme.
func (p *Parser) Parse(filename string) (ParsedFile, bool) {
	m := p.main.FindStringSubmatch(filename)
	if m == nil {
		return ParsedFile{}, false
	}
	abs, ok := absFromToken(m[3])
	if !ok {
		return ParsedFile{}, false
	}
	return ParsedFile{
		Filename:      filename,
		EpisodeCode:   strings.ToUpper(m[1]),
		BroadcastDate: m[2],
		AbsEpisode:    abs,
		Title:         m[4],
	}, true
}

// AbsEpisodeFromFilename recovers the absolute episode number from a
// filename, falling back to the date-abs segment when the full
// canonical pattern does not match.
func (p *Parser) AbsEpisodeFromFilename(filename string) (int, bool) {
	if parsed, ok := p.Parse(filename); ok {
		return parsed.AbsEpisode, true
	}
	if m := fallbackAbsPattern.FindStringSubmatch(filename); m != nil {
		return absFromToken(m[1])
	}
	return 0, false
}

// ExtractEpisodeCode finds an SE code anywhere in a filename,
// normalized to upper case.
func ExtractEpisodeCode(filename string) (string, bool) {
	m := episodeCodePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

func absFromToken(token string) (int, bool) {
	m := leadingDigitsPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
