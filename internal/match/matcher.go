// Package match pairs broadcast titles with canonical catalog
// episodes. A whole-token containment hit is trusted outright; other
// pairs fall back to cosine similarity over title token fingerprints.
package match

import (
	"shunt/internal/catalog"
	"shunt/internal/config"
	"shunt/internal/textutil"
)

// Result is the outcome of one title lookup.
type Result struct {
	Episode catalog.Episode
	Score   float64
	Found   bool
}

type candidate struct {
	episode     catalog.Episode
	norm        string
	fingerprint *textutil.Fingerprint
}

// Matcher matches raw titles against a fixed catalog.
type Matcher struct {
	threshold  float64
	stripper   *PrefixStripper
	candidates []candidate
}

// New builds a matcher over the given catalog. Candidate titles are
// normalized once, with the series prefix stripped, in catalog order.
func New(episodes []catalog.Episode, cfg config.Matching) *Matcher {
	stripper := NewPrefixStripper(cfg.SeriesPrefix)
	m := &Matcher{
		threshold:  cfg.Threshold,
		stripper:   stripper,
		candidates: make([]candidate, 0, len(episodes)),
	}
	for _, ep := range episodes {
		norm := textutil.Normalize(stripper.StripTitle(ep.Title))
		if norm == "" {
			continue
		}
		m.candidates = append(m.candidates, candidate{
			episode:     ep,
			norm:        norm,
			fingerprint: textutil.NewFingerprint(norm),
		})
	}
	return m
}

// Threshold returns the configured acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Accept reports whether a score clears the acceptance threshold.
func (m *Matcher) Accept(score float64) bool {
	return score >= m.threshold
}

// Best returns the strongest candidate for a raw title. A candidate
// containing the whole query token sequence scores 1.0 and wins
// immediately; otherwise the highest positive cosine similarity wins,
// first candidate in catalog order on ties. A title sharing no token
// with any candidate yields no match at all rather than an arbitrary
// zero-confidence one.
func (m *Matcher) Best(rawTitle string) Result {
	norm := textutil.Normalize(m.stripper.StripTitle(rawTitle))
	if norm == "" {
		return Result{}
	}
	query := textutil.NewFingerprint(norm)

	var best Result
	for _, cand := range m.candidates {
		if textutil.ContainsWholeTokens(norm, cand.norm) {
			return Result{Episode: cand.episode, Score: 1.0, Found: true}
		}
		if score := textutil.CosineSimilarity(query, cand.fingerprint); score > best.Score {
			best = Result{Episode: cand.episode, Score: score, Found: true}
		}
	}
	return best
}

// BestFilename matches the title recovered from a download filename.
func (m *Matcher) BestFilename(filename string) (string, Result) {
	raw := m.stripper.RawTitleFromFilename(filename)
	return raw, m.Best(raw)
}
