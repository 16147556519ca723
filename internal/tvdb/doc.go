// Package tvdb scrapes episode listings from TheTVDB's public HTML
// pages. It deliberately avoids the authenticated API: the all-seasons
// and season pages carry everything the catalog needs.
package tvdb
