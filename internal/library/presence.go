package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"shunt/internal/catalog"
)

// presencePattern finds the stable code/date/abs triple inside a
// filename, ignoring the series label and the title text. The abs
// token tolerates a quality suffix ("1071XL", "1071 XL").
var presencePattern = regexp.MustCompile(
	`(?i)\b(S\d{1,4}E\d{1,4})\b\s*[-–—]\s*(\d{4}-\d{2}-\d{2})\s*[-–—]\s*(\d+)(?:[ -]?[A-Za-z]{1,8})?\s*[-–—]`)

// presenceKey canonicalizes a code/date/abs triple. Both catalog rows
// and filenames reduce to it, so title spelling, unicode punctuation
// and casing never affect the comparison.
func presenceKey(code, date string, abs int) string {
	return fmt.Sprintf("%s|%s|%d", strings.ToUpper(strings.TrimSpace(code)), strings.TrimSpace(date), abs)
}

func presenceKeyFromFilename(name string) (string, bool) {
	m := presencePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	abs, err := strconv.Atoi(m[3])
	if err != nil {
		return "", false
	}
	return presenceKey(m[1], m[2], abs), true
}

func presenceKeyFromEpisode(ep catalog.Episode) string {
	code := ep.Code
	if code == "" {
		code = catalog.FormatCode(ep.SeasonRaw, ep.EpInSeason)
	}
	date := ep.AirDateISO
	if date == "" {
		date = "0000-00-00"
	}
	return presenceKey(code, date, ep.AbsEpisode)
}

// BuildPresenceIndex scans a library tree and collects the presence
// key of every video file whose name carries a code/date/abs triple.
func BuildPresenceIndex(dir string, recursive bool) (map[string]struct{}, error) {
	paths, err := ScanVideos([]string{dir}, recursive)
	if err != nil {
		return nil, err
	}
	index := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if key, ok := presenceKeyFromFilename(filepath.Base(path)); ok {
			index[key] = struct{}{}
		}
	}
	return index, nil
}

// CheckPresence flags, for each catalog episode, whether some file in
// the index carries its code/date/abs triple. The result is parallel
// to episodes.
func CheckPresence(episodes []catalog.Episode, index map[string]struct{}) []bool {
	present := make([]bool, len(episodes))
	for i, ep := range episodes {
		_, present[i] = index[presenceKeyFromEpisode(ep)]
	}
	return present
}

// WritePresenceCSV writes the catalog with a VideoPresent column
// inserted between AbsEpisode and Title. present must be parallel to
// episodes.
func WritePresenceCSV(path string, episodes []catalog.Episode, present []bool) error {
	if len(present) != len(episodes) {
		return fmt.Errorf("presence flags (%d) do not match episodes (%d)", len(present), len(episodes))
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create presence csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"SeasonEpisode", "Date", "AbsEpisode", "VideoPresent", "Title", "TargetFilename"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write presence header: %w", err)
	}
	for i, ep := range episodes {
		abs := ""
		if ep.AbsEpisode > 0 {
			abs = strconv.Itoa(ep.AbsEpisode)
		}
		row := []string{ep.Code, ep.AirDateISO, abs, strconv.FormatBool(present[i]), ep.Title, ep.TargetFilename}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write presence row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush presence csv: %w", err)
	}
	return file.Close()
}
