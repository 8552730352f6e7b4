package audiobook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"curator/internal/books"
	"curator/internal/config"
	"curator/internal/fileutil"
	"curator/internal/services"
	"curator/internal/textutil"
)

// lockFileName guards concurrent moves into the same library root. Two
// simultaneous imports of the same title would otherwise race on the
// duplicate check.
const lockFileName = ".curator.lock"

// resolveRoot returns the audiobook library root. A configured override must
// already exist; the default under the media directory is created on demand.
func (h *Handler) resolveRoot() (string, error) {
	if folder := strings.TrimSpace(h.settings.Folder); folder != "" {
		if !fileutil.IsDir(folder) {
			return "", services.Wrap(services.ErrConfiguration, "audiobook", "resolve root",
				"destination folder not found: "+folder, nil)
		}
		return folder, nil
	}
	root := h.cfg.LibraryRoot("", config.AudiobooksSubfolder)
	if err := fileutil.EnsureDir(root); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "audiobook", "resolve root", "create "+root, err)
	}
	return root, nil
}

// destinationFolder builds and creates <root>/<author>/<short title>[_ <subtitle>].
func destinationFolder(root string, info *books.Info) (string, error) {
	title := info.ShortTitle
	if info.Subtitle != "" {
		title += "_ " + info.Subtitle
	}
	dest := filepath.Join(root,
		textutil.SanitizeFileName(info.Author),
		textutil.SanitizeFileName(title))
	if err := fileutil.EnsureDir(dest); err != nil {
		return "", services.Wrap(services.ErrValidation, "audiobook", "create destination", dest, err)
	}
	return dest, nil
}

// moveChaptered moves the chaptered containers into the library. With more
// than one file the parts are numbered; a single file takes the bare title.
func (h *Handler) moveChaptered(folder string, names []string, info *books.Info) (added, skipped []string, err error) {
	return h.placeFiles(folder, names, info, func(i int, name string) string {
		ext := filepath.Ext(name)
		if len(names) > 1 {
			return fmt.Sprintf("%s, Part %d%s", textutil.SanitizeFileName(info.ShortTitle), i+1, ext)
		}
		return textutil.SanitizeFileName(info.ShortTitle) + ext
	}, fileutil.MoveFile)
}

// copyTracks copies the raw tracks into the library with a zero-padded index
// prefix, leaving the originals in place for the retention policy to judge.
func (h *Handler) copyTracks(folder string, names []string, info *books.Info) (added, skipped []string, err error) {
	return h.placeFiles(folder, names, info, func(i int, name string) string {
		return fmt.Sprintf("%02d - %s%s", i+1, textutil.SanitizeFileName(info.ShortTitle), filepath.Ext(name))
	}, fileutil.CopyFile)
}

// placeFiles writes each source file to its computed destination name under
// the library, recording a skip instead of overwriting an existing file. The
// library root is locked for the duration of the placement.
func (h *Handler) placeFiles(folder string, names []string, info *books.Info, destName func(int, string) string, place func(src, dst string) error) (added, skipped []string, err error) {
	root, err := h.resolveRoot()
	if err != nil {
		return nil, nil, err
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	if err := lock.Lock(); err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "audiobook", "lock library", root, err)
	}
	defer lock.Unlock()

	dest, err := destinationFolder(root, info)
	if err != nil {
		return nil, nil, err
	}

	for i, name := range names {
		target := filepath.Join(dest, destName(i, name))
		if fileutil.Exists(target) {
			skipped = append(skipped, target)
			continue
		}
		if err := place(filepath.Join(folder, name), target); err != nil {
			return added, skipped, services.Wrap(services.ErrValidation, "audiobook", "place file", target, err)
		}
		added = append(added, target)
	}
	return added, skipped, nil
}
