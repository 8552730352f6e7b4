// Package logging builds the slog logger used across the pipeline and defines
// the standardized structured field names. Console output is the default for
// interactive runs; JSON output and an optional log file can be enabled via
// configuration. Context helpers enrich loggers with the request correlation
// id, media kind, and source path carried on the context.
package logging
