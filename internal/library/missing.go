package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"shunt/internal/catalog"
	"shunt/internal/config"
	"shunt/internal/mediathek"
)

// MissingEntry describes one broadcast episode with no file on disk,
// enriched with catalog metadata when the absolute number is known.
type MissingEntry struct {
	AbsEpisode       int
	BroadcastTitle   string
	BroadcastDate    string
	CatalogCode      string
	CatalogDate      string
	CatalogTitle     string
	ExpectedFilename string
}

// AbsIndex parses every video filename in dir and returns the set of
// absolute episode numbers present, plus the names that could not be
// parsed.
func AbsIndex(parser *Parser, dir string) (map[int]struct{}, []string, error) {
	paths, err := ScanVideos([]string{dir}, false)
	if err != nil {
		return nil, nil, err
	}
	present := make(map[int]struct{})
	var unparsed []string
	for _, path := range paths {
		name := filepath.Base(path)
		abs, ok := parser.AbsEpisodeFromFilename(name)
		if !ok {
			unparsed = append(unparsed, name)
			continue
		}
		present[abs] = struct{}{}
	}
	sort.Strings(unparsed)
	return present, unparsed, nil
}

// FindMissing compares broadcast listings against the files present on
// disk. For each absent absolute number the first listing supplies the
// broadcast fields and the catalog supplies the expected filename.
func FindMissing(listings []mediathek.Listing, present map[int]struct{}, episodes []catalog.Episode, naming config.Naming) []MissingEntry {
	byAbs := catalog.ByAbsEpisode(episodes)

	firstListing := make(map[int]mediathek.Listing, len(listings))
	requested := make([]int, 0, len(listings))
	for _, l := range listings {
		if l.Episode <= 0 {
			continue
		}
		if _, seen := firstListing[l.Episode]; !seen {
			firstListing[l.Episode] = l
			requested = append(requested, l.Episode)
		}
	}
	sort.Ints(requested)

	var missing []MissingEntry
	for _, abs := range requested {
		if _, onDisk := present[abs]; onDisk {
			continue
		}
		listing := firstListing[abs]
		entry := MissingEntry{
			AbsEpisode:     abs,
			BroadcastTitle: listing.Title,
			BroadcastDate:  listing.Date,
		}
		if ep, ok := byAbs[abs]; ok {
			entry.CatalogCode = ep.Code
			entry.CatalogDate = ep.AirDateISO
			entry.CatalogTitle = ep.Title
			entry.ExpectedFilename = catalog.Filename(ep, naming)
		}
		missing = append(missing, entry)
	}
	return missing
}

var missingHeader = []string{
	"abs_episode", "mv_title", "mv_date",
	"tvdb_season_episode", "tvdb_date", "tvdb_title", "expected_filename",
}

// WriteMissingCSV exports a missing-episode report.
func WriteMissingCSV(path string, entries []MissingEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create missing csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(missingHeader); err != nil {
		return fmt.Errorf("write missing header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.AbsEpisode), e.BroadcastTitle, e.BroadcastDate,
			e.CatalogCode, e.CatalogDate, e.CatalogTitle, e.ExpectedFilename,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write missing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush missing csv: %w", err)
	}
	return file.Close()
}
