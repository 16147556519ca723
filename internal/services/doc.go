// Package services defines the shared error classification used by the
// pipeline steps. Errors carry a sentinel marker plus step context so
// the CLI can print a useful diagnostic and exit non-zero.
package services
