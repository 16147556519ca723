package mediathek_test

import (
	"path/filepath"
	"testing"

	"shunt/internal/mediathek"
)

func record(title, date, start, duration, description string) mediathek.Record {
	return mediathek.Record{"SWR", "Eisenbahn-Romantik", title, date, start, duration, "350", description}
}

func TestExtractEpisodeNumber(t *testing.T) {
	tests := []struct {
		description string
		want        int
		ok          bool
	}{
		{"Eisenbahn-Romantik (Folge 107)", 107, true},
		{"Folge 3: Dampf", 3, true},
		{"Eine Sendung ohne Nummer", 0, false},
		{"Die Zeitfolge 9 ist keine Folge", 0, false},
	}
	for _, tt := range tests {
		got, ok := mediathek.ExtractEpisodeNumber(tt.description)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractEpisodeNumber(%q) = %d, %v; want %d, %v", tt.description, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDurationSeconds(t *testing.T) {
	if got := mediathek.DurationSeconds("00:29:30"); got != 1770 {
		t.Fatalf("DurationSeconds = %d, want 1770", got)
	}
	if got := mediathek.DurationSeconds("broken"); got != 0 {
		t.Fatalf("DurationSeconds on bad input = %d, want 0", got)
	}
}

func TestReduceFilters(t *testing.T) {
	records := []mediathek.Record{
		record("Der Rheingold-Express", "07.04.2024", "14:15:00", "00:29:30", "Folge 1"),
		record("Kurzclip", "07.04.2024", "10:00:00", "00:03:00", "Folge 1"),
		record("Ohne Nummer", "08.04.2024", "14:15:00", "00:29:30", "eine Dokumentation"),
	}
	listings := mediathek.Reduce(records, "00:25:00")
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d: %+v", len(listings), listings)
	}
	l := listings[0]
	if l.Title != "Der Rheingold-Express" || l.Episode != 1 || l.Duration != "00:29:30" {
		t.Fatalf("unexpected listing: %+v", l)
	}
}

func TestDedupeKeepsMostRecent(t *testing.T) {
	listings := []mediathek.Listing{
		{Title: "Eisenbahn-Romantik: Der Rheingold-Express", Date: "07.04.2019", StartTime: "14:15:00", Duration: "00:29:30", Episode: 1},
		{Title: "Der Rheingold-Express", Date: "07.04.2024", StartTime: "14:15:00", Duration: "00:29:30", Episode: 1},
		{Title: "Dampf im Schwarzwald", Date: "14.04.2021", StartTime: "15:00:00", Duration: "00:28:00", Episode: 2},
	}
	deduped := mediathek.Dedupe(listings, "Eisenbahn-Romantik")
	if len(deduped) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(deduped), deduped)
	}
	// Newest first, and the series-prefixed rerun collapsed into the
	// 2024 broadcast.
	if deduped[0].Date != "07.04.2024" || deduped[0].Title != "Der Rheingold-Express" {
		t.Fatalf("unexpected first listing: %+v", deduped[0])
	}
	if deduped[1].Episode != 2 {
		t.Fatalf("unexpected second listing: %+v", deduped[1])
	}
}

func TestDedupeTieBreakers(t *testing.T) {
	listings := []mediathek.Listing{
		{Title: "Der Rheingold-Express", Date: "07.04.2024", StartTime: "08:00:00", Duration: "00:20:00", Episode: 1},
		{Title: "Der Rheingold-Express", Date: "07.04.2024", StartTime: "14:15:00", Duration: "00:29:30", Episode: 1},
	}
	deduped := mediathek.Dedupe(listings, "Eisenbahn-Romantik")
	if len(deduped) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(deduped))
	}
	if deduped[0].Duration != "00:29:30" {
		t.Fatalf("expected longer broadcast to win, got %+v", deduped[0])
	}
}

func TestListingCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.csv")
	listings := []mediathek.Listing{
		{Title: "Der Rheingold-Express", Date: "07.04.2024", StartTime: "14:15:00", Duration: "00:29:30", Episode: 1},
	}
	if err := mediathek.WriteListingCSV(path, listings); err != nil {
		t.Fatalf("WriteListingCSV: %v", err)
	}
	loaded, err := mediathek.ReadListingCSV(path)
	if err != nil {
		t.Fatalf("ReadListingCSV: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != listings[0] {
		t.Fatalf("unexpected round trip: %+v", loaded)
	}
}
