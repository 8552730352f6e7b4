package audiobook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"curator/internal/books"
	"curator/internal/chunker"
	"curator/internal/fileutil"
	"curator/internal/services"
	"curator/internal/services/chapters"
)

// chapterize merges the raw tracks into one chaptered container per part and
// returns the produced file names, in part order, relative to folder. Part
// folders are temporary and removed once their container has been moved up.
func (h *Handler) chapterize(ctx context.Context, folder string, raw []string, info *books.Info) ([]string, error) {
	if h.builder == nil || h.prober == nil {
		return nil, services.Wrap(services.ErrConfiguration, "audiobook", "chapterize",
			"chapterizer tool is not configured", nil)
	}

	paths := make([]string, 0, len(raw))
	for _, name := range raw {
		paths = append(paths, filepath.Join(folder, name))
	}
	tracks, err := h.prober.Durations(ctx, paths)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "audiobook", "probe durations", "", err)
	}

	maxPart := time.Duration(h.settings.MaxPartSeconds) * time.Second
	plan := chunker.Plan(tracks, maxPart)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(raw[0])), ".")

	var produced []string
	for i, group := range plan {
		partNumber := i + 1
		partDir, err := fileutil.Subfolder(folder, fmt.Sprintf("Part %d", partNumber))
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "audiobook", "chapterize", "", err)
		}

		for _, track := range group {
			dest := filepath.Join(partDir, filepath.Base(track.Path))
			if err := fileutil.CopyFile(track.Path, dest); err != nil {
				return nil, services.Wrap(services.ErrValidation, "audiobook", "chapterize", "copy "+track.Path, err)
			}
		}
		cover := filepath.Join(folder, coverFileName)
		if fileutil.Exists(cover) {
			if err := fileutil.CopyFile(cover, filepath.Join(partDir, coverFileName)); err != nil {
				return nil, services.Wrap(services.ErrValidation, "audiobook", "chapterize", "copy cover", err)
			}
		}

		name, err := h.builder.Build(ctx, chapters.Job{
			PartPath:   partDir,
			Author:     info.Author,
			LongTitle:  info.LongTitle,
			ShortTitle: info.ShortTitle,
			Genre:      info.Genre,
			Year:       info.Year,
			Ext:        ext,
		})
		if err != nil {
			return nil, err
		}

		builtExt := filepath.Ext(name)
		base := strings.TrimSuffix(name, builtExt)
		finalName := fmt.Sprintf("%s - %d%s", base, partNumber, builtExt)
		if err := fileutil.MoveFile(filepath.Join(partDir, name), filepath.Join(folder, finalName)); err != nil {
			return nil, services.Wrap(services.ErrValidation, "audiobook", "chapterize", "collect "+name, err)
		}
		if err := os.RemoveAll(partDir); err != nil {
			return nil, services.Wrap(services.ErrValidation, "audiobook", "chapterize", "remove "+partDir, err)
		}
		produced = append(produced, finalName)
	}
	return produced, nil
}
