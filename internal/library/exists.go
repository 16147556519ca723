package library

import (
	"fmt"
	"os"
	"strings"
)

// Match types reported by an existence check.
const (
	MatchExact         = "exact"
	MatchByEpisodeCode = "by_episode_code"
)

// Index holds the filenames of one library directory for existence
// checks: exact names plus a lookup by SE code, so a file renamed with
// a corrected title still counts as present.
type Index struct {
	exact  map[string]struct{}
	byCode map[string]string
}

// BuildIndex scans the top level of dir.
func BuildIndex(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	idx := &Index{
		exact:  make(map[string]struct{}, len(entries)),
		byCode: make(map[string]string),
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		idx.exact[name] = struct{}{}
		if code, ok := ExtractEpisodeCode(name); ok {
			if _, dup := idx.byCode[code]; !dup {
				idx.byCode[code] = name
			}
		}
	}
	return idx, nil
}

// Check reports whether a target filename already exists in the
// indexed directory, and how it matched.
func (idx *Index) Check(filename string) (bool, string) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return false, ""
	}
	if _, ok := idx.exact[name]; ok {
		return true, MatchExact
	}
	if code, ok := ExtractEpisodeCode(name); ok {
		if _, present := idx.byCode[code]; present {
			return true, MatchByEpisodeCode
		}
	}
	return false, ""
}

// ByCode returns the indexed filename carrying the given SE code.
func (idx *Index) ByCode(code string) (string, bool) {
	name, ok := idx.byCode[strings.ToUpper(code)]
	return name, ok
}
