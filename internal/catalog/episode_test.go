package catalog

import (
	"testing"

	"shunt/internal/config"
)

var testNaming = config.Naming{SeriesLabel: "Eisenbahn-Romantik", Extension: ".mp4"}

func TestFormatCode(t *testing.T) {
	tests := []struct {
		season, ep int
		want       string
	}{
		{1991, 1, "S1991E01"},
		{0, 12, "S0000E12"},
		{2024, 103, "S2024E103"},
	}
	for _, tt := range tests {
		if got := FormatCode(tt.season, tt.ep); got != tt.want {
			t.Errorf("FormatCode(%d, %d) = %q, want %q", tt.season, tt.ep, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	ep := Episode{
		Code:       "S1991E01",
		SeasonRaw:  1991,
		EpInSeason: 1,
		Title:      "Der Rheingold-Express",
		AirDateISO: "1991-04-07",
		AbsEpisode: 1,
	}
	want := "Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4"
	if got := Filename(ep, testNaming); got != want {
		t.Fatalf("Filename() = %q, want %q", got, want)
	}
}

func TestFilenamePlaceholders(t *testing.T) {
	ep := Episode{SeasonRaw: 0, EpInSeason: 3, Title: "Making of: \"Abschied\"?"}
	want := "Eisenbahn-Romantik S0000E03 - 0000-00-00 - 0 - Making of Abschied.mp4"
	if got := Filename(ep, testNaming); got != want {
		t.Fatalf("Filename() = %q, want %q", got, want)
	}
}

func TestFinalizeOrdersAndNumbers(t *testing.T) {
	episodes := []Episode{
		{SeasonRaw: 1992, EpInSeason: 2, Title: "B"},
		{SeasonRaw: 1991, EpInSeason: 1, Title: "A"},
		{SeasonRaw: 1992, EpInSeason: 1, Title: "C"},
	}
	Finalize(episodes, testNaming)

	wantOrder := []string{"A", "C", "B"}
	for i, title := range wantOrder {
		if episodes[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, episodes[i].Title, title)
		}
		if episodes[i].AbsEpisode != i+1 {
			t.Fatalf("position %d: abs = %d, want %d", i, episodes[i].AbsEpisode, i+1)
		}
		if episodes[i].TargetFilename == "" {
			t.Fatalf("position %d: missing target filename", i)
		}
	}
	if episodes[0].Code != "S1991E01" {
		t.Fatalf("expected code filled in, got %q", episodes[0].Code)
	}
}

func TestFinalizeIsStable(t *testing.T) {
	// Same season/episode key keeps listing order.
	episodes := []Episode{
		{SeasonRaw: 1991, EpInSeason: 1, Title: "first"},
		{SeasonRaw: 1991, EpInSeason: 1, Title: "second"},
	}
	Finalize(episodes, testNaming)
	if episodes[0].Title != "first" || episodes[1].Title != "second" {
		t.Fatal("expected stable ordering on equal keys")
	}
}

func TestByAbsEpisode(t *testing.T) {
	index := ByAbsEpisode([]Episode{
		{AbsEpisode: 1, Title: "one"},
		{AbsEpisode: 2, Title: "two"},
		{AbsEpisode: 1, Title: "shadowed"},
		{AbsEpisode: 0, Title: "unassigned"},
	})
	if len(index) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(index))
	}
	if index[1].Title != "one" {
		t.Fatalf("expected first record to win, got %q", index[1].Title)
	}
}

func TestMergePreservesOrder(t *testing.T) {
	regular := []Episode{{Title: "e1"}, {Title: "e2"}}
	specials := []Episode{{Title: "s1"}}

	merged := Merge(regular, specials)
	if len(merged) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(merged))
	}
	wantOrder := []string{"e1", "e2", "s1"}
	for i, title := range wantOrder {
		if merged[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, merged[i].Title, title)
		}
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty merge, got %d entries", len(got))
	}
}
