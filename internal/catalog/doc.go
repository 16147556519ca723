// Package catalog defines the canonical episode record, its JSON and
// CSV interchange codecs, catalog merging, and the SQLite-backed cache
// of fetch runs.
//
// An episode is uniquely identified by its season/episode code
// (SyyyyEnn, season 0000 for specials). Absolute episode numbers are
// assigned 1..N over the season-sorted listing and drive the canonical
// filename:
//
//	<Series> <code> - <air date> - <abs> - <title><ext>
package catalog
