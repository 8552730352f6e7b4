package media

import (
	"path/filepath"
	"strings"

	"curator/internal/services"
)

// Request is the unit of work: one downloaded file or folder plus the
// classification and override flags that steer its processing. The kind is
// immutable once classification completes; SingleFile is discovered when the
// processor stats the path.
type Request struct {
	Path string
	Name string
	Kind Kind

	// Forced records that the kind came from an explicit override rather
	// than the directory convention.
	Forced bool
	// SearchOverride replaces the cleaned folder name as the book metadata
	// query (audiobooks only).
	SearchOverride string
	// SingleTrack forces the tagger's single-track mode (music only).
	SingleTrack bool
	// SingleFile marks that the source is one file rather than a directory.
	SingleFile bool
}

// Classify builds a Request from a filesystem path laid out as
// .../<container>/<media-type-directory>/<name>. The directory above the
// trailing segment selects the kind unless forced is non-empty.
func Classify(path string, forced Kind) (*Request, error) {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	if cleaned == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return nil, services.Wrap(services.ErrClassification, "media", "classify", "path is empty", nil)
	}

	name := filepath.Base(cleaned)
	request := &Request{Path: cleaned, Name: name}

	if forced != "" {
		request.Kind = forced
		request.Forced = true
		return request, nil
	}

	typeDir := filepath.Base(filepath.Dir(cleaned))
	kind, ok := KindFromDirectory(typeDir)
	if !ok {
		return nil, services.Wrap(
			services.ErrClassification,
			"media",
			"classify",
			"unrecognized media-type directory \""+typeDir+"\" for "+cleaned,
			nil,
		)
	}
	request.Kind = kind
	return request, nil
}
