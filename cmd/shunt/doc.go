// Command shunt manages a personal TV episode library: it fetches the
// canonical episode catalog, filters broadcaster media listings,
// matches broadcast titles to catalog entries, and copies downloads
// into the library under canonical filenames.
package main
