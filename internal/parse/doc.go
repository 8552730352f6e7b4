// Package parse turns captured external-tool output into structured outcome
// sets. Each tool contract is an isolated, named pattern applied with global
// scan semantics (every non-overlapping match, in order of appearance), so
// parsing is a pure function of the text: identical input always yields
// identical ordered results.
//
// The patterns are a compatibility contract with the external tools,
// including the literal "succsessfully" misspelling the chapterizer prints.
// Do not tidy them.
package parse
