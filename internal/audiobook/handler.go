package audiobook

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"curator/internal/books"
	"curator/internal/chunker"
	"curator/internal/config"
	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/parse"
	"curator/internal/services"
	"curator/internal/services/chapters"
	"curator/internal/textutil"
)

// coverFileName is the cover image saved next to the audio files and copied
// into every part folder so the chapterizer can embed it.
const coverFileName = "cover.jpg"

// chapteredExtensions are single-container audiobook formats that need no
// further chaptering.
var chapteredExtensions = map[string]struct{}{
	".m4b": {},
}

// trackExtensions are per-track audio formats eligible for chaptering or
// indexed copying.
var trackExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".aac":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
	".wma":  {},
	".wav":  {},
}

// MetadataClient resolves book metadata and cover images.
type MetadataClient interface {
	Search(ctx context.Context, query string) (*books.Info, error)
	DownloadCover(ctx context.Context, coverURL, destPath string) error
}

// ChapterBuilder merges one part folder of tracks into a chaptered container.
type ChapterBuilder interface {
	Build(ctx context.Context, job chapters.Job) (string, error)
}

// DurationProber reads per-file audio durations.
type DurationProber interface {
	Durations(ctx context.Context, paths []string) ([]chunker.Track, error)
}

// Handler drives the audiobook flow end to end.
type Handler struct {
	cfg      *config.Config
	settings config.Audiobooks
	meta     MetadataClient
	builder  ChapterBuilder
	prober   DurationProber
	cleaner  *textutil.Cleaner
	logger   *slog.Logger
}

// New builds the audiobook handler. The junk-word denylist comes from the
// configured file when set, else the built-in list. The chapter builder and
// prober may be nil when chaptering is disabled.
func New(cfg *config.Config, meta MetadataClient, builder ChapterBuilder, prober DurationProber, logger *slog.Logger) (*Handler, error) {
	words := textutil.DefaultJunkWords
	if file := strings.TrimSpace(cfg.Audiobooks.JunkWordsFile); file != "" {
		loaded, err := textutil.LoadJunkWords(file)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "audiobook", "load junk words", file, err)
		}
		words = loaded
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		cfg:      cfg,
		settings: cfg.Audiobooks,
		meta:     meta,
		builder:  builder,
		prober:   prober,
		cleaner:  textutil.NewCleaner(words),
		logger:   logger.With(logging.FieldComponent, "audiobook"),
	}, nil
}

// Add processes one audiobook request. On success the outcome carries a
// single added entry of the form `"<long title>" by <author>` plus the
// destination paths skipped as duplicates.
func (h *Handler) Add(ctx context.Context, req *media.Request) (parse.Outcome, error) {
	log := logging.WithContext(ctx, h.logger)

	folder := req.Path
	if req.SingleFile {
		normalized, err := normalizeSingleFile(folder)
		if err != nil {
			return parse.Outcome{}, err
		}
		folder = normalized
		// The original path is gone after the move; the request follows the
		// folder so source cleanup targets it.
		req.Path = normalized
		req.SingleFile = false
		log.Info("normalized single file into folder", "folder", folder)
	}

	query := strings.TrimSpace(req.SearchOverride)
	if query == "" {
		query = h.cleaner.Clean(filepath.Base(folder))
	}
	log.Info("resolving book metadata", "query", query)

	info, err := h.meta.Search(ctx, query)
	if err != nil {
		return parse.Outcome{}, err
	}
	log.Info("resolved book", "title", info.LongTitle, "author", info.Author, "year", info.Year)

	if err := h.meta.DownloadCover(ctx, info.CoverURL, filepath.Join(folder, coverFileName)); err != nil {
		return parse.Outcome{}, err
	}

	chaptered, raw, err := classifyFiles(folder)
	if err != nil {
		return parse.Outcome{}, err
	}

	switch {
	case len(chaptered) > 0 && len(raw) > 0:
		log.Warn("folder holds both chaptered and raw files, raw files ignored", "raw", len(raw))
		raw = nil
	case len(chaptered) == 0 && len(raw) == 0:
		return parse.Outcome{}, services.Wrap(services.ErrValidation, "audiobook", "classify files",
			"no usable audio files in "+folder, nil)
	}

	if len(chaptered) == 0 && h.settings.Chapterize {
		built, err := h.chapterize(ctx, folder, raw, info)
		if err != nil {
			return parse.Outcome{}, err
		}
		chaptered = built
		raw = nil
	}

	var added, skipped []string
	if len(chaptered) > 0 {
		added, skipped, err = h.moveChaptered(folder, chaptered, info)
	} else {
		added, skipped, err = h.copyTracks(folder, raw, info)
	}
	if err != nil {
		return parse.Outcome{}, err
	}

	outcome := parse.Outcome{Skipped: skipped}
	if len(added) > 0 {
		outcome.Added = []string{"\"" + info.LongTitle + "\" by " + info.Author}
	}
	return outcome, nil
}

// normalizeSingleFile moves a lone file into a newly created subfolder named
// after it so the folder-based flow applies uniformly. Returns the folder.
func normalizeSingleFile(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	folder := filepath.Join(filepath.Dir(path), name)
	if err := fileutil.EnsureDir(folder); err != nil {
		return "", services.Wrap(services.ErrValidation, "audiobook", "normalize single file", folder, err)
	}
	if err := fileutil.MoveFile(path, filepath.Join(folder, base)); err != nil {
		return "", services.Wrap(services.ErrValidation, "audiobook", "normalize single file", "move "+path, err)
	}
	return folder, nil
}

// classifyFiles partitions the folder's entries into chaptered containers and
// raw tracks, both in sorted directory order.
func classifyFiles(folder string) (chaptered, raw []string, err error) {
	names, err := fileutil.SortedNames(folder)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "audiobook", "classify files", folder, err)
	}
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := chapteredExtensions[ext]; ok {
			chaptered = append(chaptered, name)
			continue
		}
		if _, ok := trackExtensions[ext]; ok {
			raw = append(raw, name)
		}
	}
	return chaptered, raw, nil
}
