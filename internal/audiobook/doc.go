// Package audiobook implements the book handler, the most involved of the
// four: it cleans the downloaded folder name into a search string, resolves
// book metadata, optionally merges per-track audio into chaptered container
// files, and moves the result into the author/title library layout with
// duplicate-skip protection.
package audiobook
