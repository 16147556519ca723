package mediathek

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"shunt/internal/textutil"
)

// Listing is the reduced tabular form of a film record: just the
// fields needed to match broadcasts against the canonical catalog.
type Listing struct {
	Title     string
	Date      string // DD.MM.YYYY as broadcast
	StartTime string
	Duration  string // HH:MM:SS
	Episode   int
}

var folgePattern = regexp.MustCompile(`\bFolge\s*(\d+)\b`)

// ExtractEpisodeNumber pulls the series episode number from a film
// description, e.g. "(Folge 107)" or "Folge 107".
func ExtractEpisodeNumber(description string) (int, bool) {
	m := folgePattern.FindStringSubmatch(description)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DurationSeconds converts HH:MM:SS to seconds, 0 on malformed input.
func DurationSeconds(t string) int {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 3 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return h*3600 + m*60 + s
}

// Filmliste positional indices.
const (
	fieldTitle       = 2
	fieldDate        = 3
	fieldStartTime   = 4
	fieldDuration    = 5
	fieldDescription = 7
)

// Reduce converts raw film records to listings. Records without a
// "Folge N" episode number are dropped, as are broadcasts shorter
// than minDuration (clip reruns and previews).
func Reduce(records []Record, minDuration string) []Listing {
	minSeconds := DurationSeconds(minDuration)

	listings := make([]Listing, 0, len(records))
	for _, rec := range records {
		if len(rec) < fieldDescription+1 {
			continue
		}
		episode, ok := ExtractEpisodeNumber(rec.String(fieldDescription))
		if !ok {
			continue
		}
		duration := rec.String(fieldDuration)
		if minSeconds > 0 && DurationSeconds(duration) < minSeconds {
			continue
		}
		listings = append(listings, Listing{
			Title:     rec.String(fieldTitle),
			Date:      rec.String(fieldDate),
			StartTime: strings.TrimSpace(rec.String(fieldStartTime)),
			Duration:  duration,
			Episode:   episode,
		})
	}
	return listings
}

// Dedupe collapses repeated broadcasts of the same episode. The key is
// episode number plus normalized title with the series name stripped;
// the most recent broadcast wins, with longer duration and later start
// time as tie-breakers. The result is ordered newest first.
func Dedupe(listings []Listing, seriesPrefix string) []Listing {
	if len(listings) == 0 {
		return listings
	}

	stripPhrase := phrasePattern(seriesPrefix)
	type keyed struct {
		Listing
		normTitle string
		date      time.Time
		seconds   int
	}
	rows := make([]keyed, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, keyed{
			Listing:   l,
			normTitle: normalizeListingTitle(l.Title, stripPhrase),
			date:      parseBroadcastDate(l.Date),
			seconds:   DurationSeconds(l.Duration),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Episode != rows[j].Episode {
			return rows[i].Episode < rows[j].Episode
		}
		if rows[i].normTitle != rows[j].normTitle {
			return rows[i].normTitle < rows[j].normTitle
		}
		if !rows[i].date.Equal(rows[j].date) {
			return rows[i].date.After(rows[j].date)
		}
		if rows[i].seconds != rows[j].seconds {
			return rows[i].seconds > rows[j].seconds
		}
		return rows[i].StartTime > rows[j].StartTime
	})

	type key struct {
		episode int
		title   string
	}
	seen := make(map[key]struct{}, len(rows))
	deduped := make([]keyed, 0, len(rows))
	for _, row := range rows {
		k := key{row.Episode, row.normTitle}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, row)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].date.After(deduped[j].date)
	})

	out := make([]Listing, len(deduped))
	for i, row := range deduped {
		out[i] = row.Listing
	}
	return out
}

// phrasePattern builds a boundary-anchored matcher for the normalized
// series name, tolerant of the dash that normalization drops.
func phrasePattern(seriesPrefix string) *regexp.Regexp {
	tokens := strings.Fields(textutil.Normalize(seriesPrefix))
	if len(tokens) == 0 {
		return nil
	}
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`\b` + strings.Join(tokens, `\s*`) + `\b`)
}

func normalizeListingTitle(title string, stripPhrase *regexp.Regexp) string {
	norm := textutil.Normalize(title)
	if stripPhrase != nil {
		norm = stripPhrase.ReplaceAllString(norm, "")
	}
	return strings.Join(strings.Fields(norm), " ")
}

func parseBroadcastDate(raw string) time.Time {
	parsed, err := time.Parse("02.01.2006", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return parsed
}
