// Package music implements the tracks handler. The external tagger owns the
// library location, so this handler has no destination precondition: it runs
// the tagger in batch or single-track mode and parses the confirmations and
// duplicate notices from its quiet-mode output.
package music
