package mediathek

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// WriteRecordsJSON stores raw film records as an indented JSON array,
// the interchange between the download and convert steps.
func WriteRecordsJSON(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode film records: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write film records: %w", err)
	}
	return nil
}

// ReadRecordsJSON loads raw film records written by WriteRecordsJSON.
func ReadRecordsJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read film records: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse film records %s: %w", path, err)
	}
	return records, nil
}

var listingHeader = []string{"title", "date", "start_time", "duration", "episode"}

// WriteListingCSV writes the reduced broadcast listing.
func WriteListingCSV(path string, listings []Listing) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create listing csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(listingHeader); err != nil {
		return fmt.Errorf("write listing header: %w", err)
	}
	for _, l := range listings {
		row := []string{l.Title, l.Date, l.StartTime, l.Duration, strconv.Itoa(l.Episode)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write listing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush listing csv: %w", err)
	}
	return file.Close()
}

// ReadListingCSV loads a listing written by WriteListingCSV.
func ReadListingCSV(path string) ([]Listing, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listing csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse listing csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("listing csv %s is empty", path)
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range listingHeader {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("listing csv missing required column %q", required)
		}
	}

	listings := make([]Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		episode, err := strconv.Atoi(row[columns["episode"]])
		if err != nil {
			return nil, fmt.Errorf("listing csv bad episode %q: %w", row[columns["episode"]], err)
		}
		listings = append(listings, Listing{
			Title:     row[columns["title"]],
			Date:      row[columns["date"]],
			StartTime: row[columns["start_time"]],
			Duration:  row[columns["duration"]],
			Episode:   episode,
		})
	}
	return listings, nil
}
