package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"shunt/internal/fileutil"
)

// ScanVideos lists video files in the given directories, sorted by
// path. With recursive set, subdirectories are walked too.
func ScanVideos(dirs []string, recursive bool) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}

		if recursive {
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && fileutil.IsVideo(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", dir, err)
			}
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && fileutil.IsVideo(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ParseAll runs the filename parser over scanned paths, filling in
// location and size. Files that do not follow the naming scheme come
// back in the second slice.
func ParseAll(parser *Parser, paths []string) (parsed []ParsedFile, skipped []string) {
	for _, path := range paths {
		entry, ok := parser.Parse(filepath.Base(path))
		if !ok {
			skipped = append(skipped, path)
			continue
		}
		entry.Directory = filepath.Dir(path)
		entry.Path = path
		if info, err := os.Stat(path); err == nil {
			entry.SizeMiB = float64(info.Size()) / (1024 * 1024)
		}
		parsed = append(parsed, entry)
	}
	return parsed, skipped
}
