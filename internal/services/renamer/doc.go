// Package renamer wraps the external renaming tool used for TV and movie
// organization. The tool is driven over its CLI and its combined output is
// captured verbatim for the parsers; this package never interprets rename
// results itself.
//
// The same binary also provides archive extraction. By the extraction
// contract, archives under a source path are unpacked into a sibling
// directory named "<name>.extracted", which the pipeline treats as a
// temporary artifact and always removes during cleanup.
package renamer
