package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("Dampflok im Schnee")},
		{"b nil", NewFingerprint("Dampflok im Schnee"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	title := "Mit dem Zug durch die Schweiz"
	got := CosineSimilarity(NewFingerprint(title), NewFingerprint(title))
	if got != 1.0 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("Schmalspurbahn im Erzgebirge")
	b := NewFingerprint("Hafenrundfahrt durch Hamburg")
	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint("Der Rheingold-Express")
	b := NewFingerprint("Rheingold Express - Folge 1")
	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("Nostalgie auf schmaler Spur")
	b := NewFingerprint("Schmaler Spur ins Gebirge")
	if ab, ba := CosineSimilarity(a, b), CosineSimilarity(b, a); ab != ba {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
}

func TestCosineSimilarityDiacriticsFolded(t *testing.T) {
	a := NewFingerprint("Züge über den Brenner")
	b := NewFingerprint("Zuge uber den Brenner")
	if got := CosineSimilarity(a, b); got != 1.0 {
		t.Errorf("CosineSimilarity(folded) = %v, want 1.0", got)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty title")
	}
	if fp := NewFingerprint("1 2 -"); fp != nil {
		t.Error("expected nil for title with only single-rune tokens")
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// "zug zug bahn" -> zug:2, bahn:1, norm = sqrt(5)
	fp := NewFingerprint("Zug Zug Bahn")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}
	wantNorm := math.Sqrt(5)
	if math.Abs(fp.norm-wantNorm) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, wantNorm)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Der Rheingold-Express", []string{"der", "rheingold", "express"}},
		{"drops single runes", "Teil 1 – ab 8 Uhr", []string{"teil", "ab", "uhr"}},
		{"empty", "", nil},
		{"numbers kept", "Folge 107", []string{"folge", "107"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFingerprintTokenCount(t *testing.T) {
	var nilFP *Fingerprint
	if got := nilFP.TokenCount(); got != 0 {
		t.Errorf("nil TokenCount() = %d, want 0", got)
	}
	if got := NewFingerprint("zug zug bahn").TokenCount(); got != 2 {
		t.Errorf("TokenCount() = %d, want 2", got)
	}
}
