package library

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"shunt/internal/catalog"
)

func writePresenceFixtures(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
}

func TestCheckPresence(t *testing.T) {
	dir := t.TempDir()
	writePresenceFixtures(t, dir,
		"Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4",
		// unicode dashes, retitled, XL quality suffix: still the same triple
		"Eisenbahn-Romantik S2024E10 – 2024-03-22 – 1071XL – Ganz anderer Titel.mp4",
		"s1992e05 - 1992-06-01 - 12 XL - Kleingeschrieben.mkv",
		"unrelated-video.mp4",
	)

	index, err := BuildPresenceIndex(dir, false)
	if err != nil {
		t.Fatalf("BuildPresenceIndex: %v", err)
	}
	if len(index) != 3 {
		t.Fatalf("expected 3 indexed files, got %d", len(index))
	}

	episodes := []catalog.Episode{
		{Code: "S1991E01", AirDateISO: "1991-04-07", AbsEpisode: 1, Title: "Der Rheingold-Express"},
		{Code: "S2024E10", AirDateISO: "2024-03-22", AbsEpisode: 1071, Title: "Alter Titel"},
		{Code: "S1992E05", AirDateISO: "1992-06-01", AbsEpisode: 12, Title: "Egal"},
		{Code: "S1999E03", AirDateISO: "1999-09-09", AbsEpisode: 400, Title: "Nie gesendet"},
	}
	present := CheckPresence(episodes, index)
	want := []bool{true, true, true, false}
	for i := range want {
		if present[i] != want[i] {
			t.Fatalf("episode %s: present=%v want %v", episodes[i].Code, present[i], want[i])
		}
	}
}

func TestCheckPresenceRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "1991")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writePresenceFixtures(t, sub,
		"Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4")

	flat, err := BuildPresenceIndex(dir, false)
	if err != nil {
		t.Fatalf("BuildPresenceIndex: %v", err)
	}
	if len(flat) != 0 {
		t.Fatalf("flat scan should not descend, got %d entries", len(flat))
	}

	deep, err := BuildPresenceIndex(dir, true)
	if err != nil {
		t.Fatalf("BuildPresenceIndex recursive: %v", err)
	}
	if len(deep) != 1 {
		t.Fatalf("expected 1 entry from recursive scan, got %d", len(deep))
	}
}

func TestWritePresenceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog-presence.csv")
	episodes := []catalog.Episode{
		{Code: "S1991E01", AirDateISO: "1991-04-07", AbsEpisode: 1, Title: "Der Rheingold-Express", TargetFilename: "Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4"},
		{Code: "S1991E02", AirDateISO: "1991-04-14", AbsEpisode: 2, Title: "Dampf im Schwarzwald", TargetFilename: "Eisenbahn-Romantik S1991E02 - 1991-04-14 - 2 - Dampf im Schwarzwald.mp4"},
	}
	if err := WritePresenceCSV(path, episodes, []bool{true, false}); err != nil {
		t.Fatalf("WritePresenceCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read presence csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][3] != "VideoPresent" || rows[0][4] != "Title" {
		t.Fatalf("VideoPresent column not between AbsEpisode and Title: %v", rows[0])
	}
	if rows[1][3] != "true" || rows[2][3] != "false" {
		t.Fatalf("unexpected presence values: %v %v", rows[1], rows[2])
	}

	if err := WritePresenceCSV(path, episodes, []bool{true}); err == nil {
		t.Fatal("expected error for mismatched flag count")
	}
}
