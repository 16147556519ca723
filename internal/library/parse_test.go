package library

import "testing"

func newTestParser() *Parser {
	return NewParser("Eisenbahn-Romantik", ".mp4")
}

func TestParseCanonicalFilename(t *testing.T) {
	parser := newTestParser()
	parsed, ok := parser.Parse("Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4")
	if !ok {
		t.Fatal("expected filename to parse")
	}
	if parsed.EpisodeCode != "S1991E01" || parsed.BroadcastDate != "1991-04-07" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
	if parsed.AbsEpisode != 1 || parsed.Title != "Der Rheingold-Express" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestParseAbsTokenSuffix(t *testing.T) {
	parser := newTestParser()
	parsed, ok := parser.Parse("Eisenbahn-Romantik S2024E10 - 2024-03-22 - 890XL - Modellbahn.mp4")
	if !ok {
		t.Fatal("expected filename to parse")
	}
	if parsed.AbsEpisode != 890 {
		t.Fatalf("expected abs 890, got %d", parsed.AbsEpisode)
	}
}

func TestParseUnicodeDashes(t *testing.T) {
	parser := newTestParser()
	parsed, ok := parser.Parse("Eisenbahn-Romantik S1991E01 – 1991-04-07 – 1 – Der Rheingold-Express.mp4")
	if !ok {
		t.Fatal("expected en-dash filename to parse")
	}
	if parsed.AbsEpisode != 1 {
		t.Fatalf("unexpected parse: %+v", parsed)
	}
}

func TestParseRejectsOtherNames(t *testing.T) {
	parser := newTestParser()
	for _, name := range []string{
		"Eisenbahn-Romantik Der Rheingold-Express.mp4",
		"Anderer Film S1991E01 - 1991-04-07 - 1 - Titel.mp4",
		"Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Titel.mkv",
	} {
		if _, ok := parser.Parse(name); ok {
			t.Errorf("expected %q not to parse", name)
		}
	}
}

func TestAbsEpisodeFromFilenameFallback(t *testing.T) {
	parser := newTestParser()
	// Broken rename without the series label still yields the number
	// through the date-abs fallback.
	abs, ok := parser.AbsEpisodeFromFilename("S2024E10 - 2024-03-22 - 1071XL - Something else.mp4")
	if !ok || abs != 1071 {
		t.Fatalf("expected fallback abs 1071, got %d (ok=%v)", abs, ok)
	}
	if _, ok := parser.AbsEpisodeFromFilename("nur-ein-clip.mp4"); ok {
		t.Fatal("expected no abs for unrelated filename")
	}
}

func TestExtractEpisodeCode(t *testing.T) {
	code, ok := ExtractEpisodeCode("irgendwas s1991e01 rest.mp4")
	if !ok || code != "S1991E01" {
		t.Fatalf("expected upper-cased code, got %q (ok=%v)", code, ok)
	}
	if _, ok := ExtractEpisodeCode("kein code.mp4"); ok {
		t.Fatal("expected no code")
	}
}
