package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Duplicate keys checked by the report, in report order.
const (
	KeyEpisodeCode   = "episode_code"
	KeyBroadcastDate = "broadcast_date"
	KeyAbsEpisode    = "abs_episode"
)

// DuplicateGroup is one shared key value and every file carrying it.
type DuplicateGroup struct {
	Key   string
	Value string
	Files []ParsedFile
}

// FindDuplicates groups parsed files sharing an SE code, broadcast
// date or absolute number. Groups come back sorted by key value, files
// within a group by path.
func FindDuplicates(parsed []ParsedFile, key string) []DuplicateGroup {
	value := func(f ParsedFile) string {
		switch key {
		case KeyEpisodeCode:
			return f.EpisodeCode
		case KeyBroadcastDate:
			return f.BroadcastDate
		case KeyAbsEpisode:
			return strconv.Itoa(f.AbsEpisode)
		default:
			return ""
		}
	}

	buckets := make(map[string][]ParsedFile)
	for _, f := range parsed {
		v := value(f)
		if v == "" {
			continue
		}
		buckets[v] = append(buckets[v], f)
	}

	var groups []DuplicateGroup
	for v, files := range buckets {
		if len(files) < 2 {
			continue
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		groups = append(groups, DuplicateGroup{Key: key, Value: v, Files: files})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	return groups
}

var parsedFileHeader = []string{
	"directory", "filename", "path", "size_mib",
	"episode_code", "broadcast_date", "abs_episode", "title",
}

// WriteParsedCSV exports parsed files sorted by code, date, number and
// path, the order the duplicate report uses.
func WriteParsedCSV(path string, parsed []ParsedFile) error {
	rows := make([]ParsedFile, len(parsed))
	copy(rows, parsed)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EpisodeCode != rows[j].EpisodeCode {
			return rows[i].EpisodeCode < rows[j].EpisodeCode
		}
		if rows[i].BroadcastDate != rows[j].BroadcastDate {
			return rows[i].BroadcastDate < rows[j].BroadcastDate
		}
		if rows[i].AbsEpisode != rows[j].AbsEpisode {
			return rows[i].AbsEpisode < rows[j].AbsEpisode
		}
		return rows[i].Path < rows[j].Path
	})

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parsed csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(parsedFileHeader); err != nil {
		return fmt.Errorf("write parsed header: %w", err)
	}
	for _, f := range rows {
		record := []string{
			f.Directory, f.Filename, f.Path,
			strconv.FormatFloat(f.SizeMiB, 'f', 2, 64),
			f.EpisodeCode, f.BroadcastDate,
			strconv.Itoa(f.AbsEpisode), f.Title,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write parsed row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush parsed csv: %w", err)
	}
	return file.Close()
}
