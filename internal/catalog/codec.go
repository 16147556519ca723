package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the column layout of the tabular catalog form.
var csvHeader = []string{"SeasonEpisode", "Date", "AbsEpisode", "Title", "TargetFilename"}

// ReadJSON loads a catalog from a JSON file containing a list of episodes.
func ReadJSON(path string) ([]Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var episodes []Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return episodes, nil
}

// WriteJSON writes a catalog as an indented JSON list.
func WriteJSON(path string, episodes []Episode) error {
	if episodes == nil {
		episodes = []Episode{}
	}
	data, err := json.MarshalIndent(episodes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// WriteCSV writes the tabular catalog form with columns
// SeasonEpisode, Date, AbsEpisode, Title, TargetFilename.
func WriteCSV(path string, episodes []Episode) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write catalog header: %w", err)
	}
	for _, ep := range episodes {
		abs := ""
		if ep.AbsEpisode > 0 {
			abs = strconv.Itoa(ep.AbsEpisode)
		}
		record := []string{ep.Code, ep.AirDateISO, abs, ep.Title, ep.TargetFilename}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write catalog row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush catalog csv: %w", err)
	}
	return file.Close()
}

// ReadCSV loads the tabular catalog form written by WriteCSV.
func ReadCSV(path string) ([]Episode, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog csv %s is empty", path)
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range []string{"SeasonEpisode", "AbsEpisode", "Title"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("catalog csv missing required column %q", required)
		}
	}
	dateCol, ok := columns["Date"]
	if !ok {
		// older exports used BroadcastDate
		if dateCol, ok = columns["BroadcastDate"]; !ok {
			return nil, fmt.Errorf("catalog csv missing Date column")
		}
	}

	episodes := make([]Episode, 0, len(rows)-1)
	for _, row := range rows[1:] {
		ep := Episode{
			Code:       row[columns["SeasonEpisode"]],
			AirDateISO: row[dateCol],
			Title:      row[columns["Title"]],
		}
		if abs := row[columns["AbsEpisode"]]; abs != "" {
			value, err := strconv.Atoi(abs)
			if err != nil {
				return nil, fmt.Errorf("catalog csv bad AbsEpisode %q: %w", abs, err)
			}
			ep.AbsEpisode = value
		}
		if col, ok := columns["TargetFilename"]; ok && col < len(row) {
			ep.TargetFilename = row[col]
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}
