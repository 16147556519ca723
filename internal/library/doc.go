// Package library inspects the on-disk episode collection: parsing
// canonical filenames back into metadata, checking which catalog
// entries already exist, and reporting duplicates and gaps.
package library
