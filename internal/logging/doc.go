// Package logging builds the slog loggers used across shunt. It offers
// a human-oriented console handler for interactive runs and a JSON
// handler for machine consumption, plus small attribute helpers so call
// sites stay terse.
package logging
