// Package services holds cross-cutting plumbing shared by every pipeline
// component: the sentinel error taxonomy, the Wrap helper that tags failures
// for exit-code classification, and context annotation helpers that thread
// request metadata into structured logs.
//
// Tool-specific clients live in subpackages (renamer, tagger, chapters); they
// depend only on the taxonomy defined here so the processor can classify any
// failure without knowing which tool produced it.
package services
