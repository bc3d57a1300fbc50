// Package logging builds the slog loggers used across the CLI.
//
// It supports a human-oriented console format and a machine-oriented json
// format, selected through configuration, plus shared attribute helpers so
// field names stay consistent between packages.
package logging
