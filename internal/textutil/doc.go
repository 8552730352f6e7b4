// Package textutil provides text processing utilities for the pipeline.
//
// The primary use cases are:
//   - Sanitizing titles and path segments for safe filesystem use
//   - Cleaning downloaded folder names into book search strings by stripping
//     junk words, bracketed groups, and release-group tags
//   - Reducing strings to ASCII-safe command-line arguments
//
// Every cleaning rule is applied as a fixed-point iteration: it runs until it
// produces no further change, so cleaning an already-clean string is a no-op.
package textutil
