// Package media defines the media kind taxonomy and the request value that
// travels through one pipeline invocation.
package media

import "strings"

// Kind is one of the four supported media categories.
type Kind string

const (
	KindTV        Kind = "tv"
	KindMovie     Kind = "movie"
	KindMusic     Kind = "music"
	KindAudiobook Kind = "audiobook"
)

// String returns the lowercase canonical name.
func (k Kind) String() string { return string(k) }

// Label returns the user-facing name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindTV:
		return "TV"
	case KindMovie:
		return "Movie"
	case KindMusic:
		return "Music"
	case KindAudiobook:
		return "Audiobook"
	default:
		return "Unknown"
	}
}

// kindSynonyms maps download directory names to canonical kinds. Matching is
// case-insensitive.
var kindSynonyms = map[string]Kind{
	"tv":         KindTV,
	"tv shows":   KindTV,
	"television": KindTV,
	"movies":     KindMovie,
	"music":      KindMusic,
	"books":      KindAudiobook,
	"audiobooks": KindAudiobook,
}

// KindFromDirectory resolves a media-type directory name to a kind.
func KindFromDirectory(name string) (Kind, bool) {
	kind, ok := kindSynonyms[strings.ToLower(strings.TrimSpace(name))]
	return kind, ok
}

// ParseKind resolves an explicit kind override supplied on the command line.
// It accepts both canonical names and directory synonyms.
func ParseKind(value string) (Kind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "":
		return "", false
	case "tv", "movie", "music", "audiobook":
		return Kind(normalized), true
	case "book":
		return KindAudiobook, true
	}
	return KindFromDirectory(normalized)
}
