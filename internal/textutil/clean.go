package textutil

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultJunkWords is the built-in denylist applied to downloaded folder
// names before they are used as book search strings.
var DefaultJunkWords = []string{
	"unabridged",
	"abridged",
	"audiobook",
	"audiobooks",
	"audio book",
	"itunes",
	"audible",
	"retail",
	"chapterized",
	"extracted",
	"mp3",
	"m4b",
	"m4a",
	"64k",
	"96k",
	"128k",
	"kbps",
	"narrated by",
	"read by",
}

var (
	bracketGroupPattern = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]|\{[^{}]*\}`)
	nonAlphaPattern     = regexp.MustCompile(`[^a-zA-Z\s]+`)
	releaseTagPattern   = regexp.MustCompile(`\b[A-Z]{3,4}\b`)
)

// Cleaner strips junk terms and release artifacts from folder names. The
// zero-cost construction precompiles one pattern per junk word.
type Cleaner struct {
	junk []*regexp.Regexp
}

// NewCleaner builds a Cleaner for the provided denylist. Empty entries are
// ignored; matching is case-insensitive and word-bounded.
func NewCleaner(words []string) *Cleaner {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return &Cleaner{junk: patterns}
}

// Clean applies the stripping rules in a fixed order, each iterated to a
// fixed point: junk words, bracketed groups, non-alphabetic characters,
// solitary 3-4 letter uppercase release tags, and finally whitespace
// collapsing. Cleaning is idempotent.
func (c *Cleaner) Clean(name string) string {
	value := name
	for _, pattern := range c.junk {
		value = fixedPoint(value, func(s string) string {
			return pattern.ReplaceAllString(s, " ")
		})
	}
	value = fixedPoint(value, func(s string) string {
		return bracketGroupPattern.ReplaceAllString(s, " ")
	})
	value = fixedPoint(value, func(s string) string {
		return nonAlphaPattern.ReplaceAllString(s, " ")
	})
	value = fixedPoint(value, func(s string) string {
		return releaseTagPattern.ReplaceAllString(s, " ")
	})
	return CollapseWhitespace(value)
}

// LoadJunkWords reads a newline-separated denylist file. Blank lines and
// lines starting with # are skipped.
func LoadJunkWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read junk words %s: %w", path, err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

func fixedPoint(value string, apply func(string) string) string {
	for {
		next := apply(value)
		if next == value {
			return value
		}
		value = next
	}
}
