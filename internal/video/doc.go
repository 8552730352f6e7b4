// Package video implements the TV and movie handlers. Both kinds share one
// flow: resolve the destination library root, optionally strip subtitle and
// auxiliary files from the source, run the external renamer against the
// per-kind metadata database, and rebuild human-readable titles from the
// renamed destination paths.
package video
