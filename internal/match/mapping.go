package match

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"shunt/internal/catalog"
	"shunt/internal/config"
	"shunt/internal/mediathek"
	"shunt/internal/services"
	"shunt/internal/textutil"
)

// Mapping ties one broadcast listing to its catalog match. A listing
// below the acceptance threshold keeps its score but gets no target
// filename, so review spreadsheets still show the near-misses.
type Mapping struct {
	Listing      mediathek.Listing
	MatchedCode  string
	MatchedTitle string
	Confidence   float64
	NewFilename  string
	// FileExists and MatchType are filled by the library existence
	// check: whether the target is already on disk, and whether it was
	// found by exact name or by shared episode code.
	FileExists bool
	MatchType  string
}

// Build matches every listing against the catalog and derives target
// filenames for accepted matches.
func Build(listings []mediathek.Listing, matcher *Matcher, naming config.Naming) []Mapping {
	mappings := make([]Mapping, 0, len(listings))
	for _, listing := range listings {
		mapping := Mapping{Listing: listing}
		if result := matcher.Best(listing.Title); result.Found {
			mapping.MatchedCode = result.Episode.Code
			mapping.MatchedTitle = result.Episode.Title
			mapping.Confidence = result.Score
			if matcher.Accept(result.Score) {
				mapping.NewFilename = targetFilename(result.Episode, naming)
			}
		}
		mappings = append(mappings, mapping)
	}
	return mappings
}

func targetFilename(ep catalog.Episode, naming config.Naming) string {
	if ep.TargetFilename != "" {
		return ep.TargetFilename
	}
	return catalog.Filename(ep, naming)
}

var mappingHeader = []string{
	"title", "date", "start_time", "duration", "episode",
	"matched_code", "matched_title", "confidence", "new_filename",
	"file_exists", "match_type",
}

// WriteCSV writes a mapping table.
func WriteCSV(path string, mappings []Mapping) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(mappingHeader); err != nil {
		return fmt.Errorf("write mapping header: %w", err)
	}
	for _, m := range mappings {
		row := []string{
			m.Listing.Title, m.Listing.Date, m.Listing.StartTime,
			m.Listing.Duration, strconv.Itoa(m.Listing.Episode),
			m.MatchedCode, m.MatchedTitle,
			strconv.FormatFloat(m.Confidence, 'f', 3, 64),
			m.NewFilename,
			strconv.FormatBool(m.FileExists), m.MatchType,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write mapping row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush mapping csv: %w", err)
	}
	return file.Close()
}

// ReadCSV loads a mapping table written by WriteCSV.
func ReadCSV(path string) ([]Mapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse mapping csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, services.Wrap(services.ErrValidation, "match", "read mapping",
			fmt.Sprintf("mapping csv %s is empty", path), nil)
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range []string{"title", "new_filename"} {
		if _, ok := columns[required]; !ok {
			return nil, services.Wrap(services.ErrValidation, "match", "read mapping",
				fmt.Sprintf("missing required column %q", required), nil)
		}
	}

	cell := func(row []string, name string) string {
		col, ok := columns[name]
		if !ok || col >= len(row) {
			return ""
		}
		return row[col]
	}

	mappings := make([]Mapping, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := Mapping{
			Listing: mediathek.Listing{
				Title:     cell(row, "title"),
				Date:      cell(row, "date"),
				StartTime: cell(row, "start_time"),
				Duration:  cell(row, "duration"),
			},
			MatchedCode:  cell(row, "matched_code"),
			MatchedTitle: cell(row, "matched_title"),
			NewFilename:  cell(row, "new_filename"),
		}
		if raw := cell(row, "episode"); raw != "" {
			if value, err := strconv.Atoi(raw); err == nil {
				m.Listing.Episode = value
			}
		}
		if raw := cell(row, "confidence"); raw != "" {
			if value, err := strconv.ParseFloat(raw, 64); err == nil {
				m.Confidence = value
			}
		}
		if raw := cell(row, "file_exists"); raw != "" {
			if value, err := strconv.ParseBool(raw); err == nil {
				m.FileExists = value
			}
		}
		m.MatchType = cell(row, "match_type")
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// Index builds the copy lookup: normalized listing title to target
// filename. Rows without a target are skipped. Conflicting duplicates
// keep the first target; their titles are reported for review.
func Index(mappings []Mapping) (map[string]string, []string) {
	index := make(map[string]string, len(mappings))
	var conflicts []string
	for _, m := range mappings {
		target := strings.TrimSpace(m.NewFilename)
		if target == "" {
			continue
		}
		key := textutil.Normalize(m.Listing.Title)
		if key == "" {
			continue
		}
		if existing, ok := index[key]; ok {
			if existing != target {
				conflicts = append(conflicts, m.Listing.Title)
			}
			continue
		}
		index[key] = target
	}
	return index, conflicts
}
