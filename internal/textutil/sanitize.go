package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// ASCIISafe reduces a string to printable ASCII so it can be passed as a
// positional argument to tools that mangle wider encodings. Non-ASCII runes
// are dropped; control characters become spaces.
func ASCIISafe(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r > unicode.MaxASCII:
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return CollapseWhitespace(b.String())
}

// CollapseWhitespace squeezes runs of whitespace into single spaces and trims
// the ends.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
