// Package mediathek downloads and filters the MediathekView Filmliste.
// The Filmliste is an xz-compressed pseudo-JSON document whose film
// records repeat under the duplicate key "X", so extraction streams
// tokens instead of unmarshalling the whole document.
package mediathek
