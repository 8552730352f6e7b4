package video

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/config"
	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/parse"
	"curator/internal/services"
	"curator/internal/services/renamer"
)

// videoExtensions are the file suffixes kept when stripping auxiliary files
// from a source directory. Everything else (subtitles, nfo files, samples) is
// deleted before the renamer runs.
var videoExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".avi":  {},
	".mov":  {},
	".wmv":  {},
	".mpg":  {},
	".mpeg": {},
	".ts":   {},
	".webm": {},
}

// titleFunc rebuilds a human-readable title from a renamed destination path.
type titleFunc func(string) (string, bool)

// Handler drives the renamer for one video kind. Construct with NewTV or
// NewMovie; the two differ only in metadata database, naming template, and
// title reconstruction.
type Handler struct {
	kind      media.Kind
	settings  config.Video
	cfg       *config.Config
	client    *renamer.Client
	logger    *slog.Logger
	db        string
	subfolder string
	template  func(root string) string
	title     titleFunc
}

// NewTV builds the TV episode handler.
func NewTV(cfg *config.Config, client *renamer.Client, logger *slog.Logger) *Handler {
	return &Handler{
		kind:      media.KindTV,
		settings:  cfg.TV,
		cfg:       cfg,
		client:    client,
		logger:    componentLogger(logger),
		db:        "thetvdb",
		subfolder: config.TVSubfolder,
		template: func(root string) string {
			return root + "/{n}/Season {s}/{n}.{s00e00}"
		},
		title: parse.TVEpisodeTitle,
	}
}

// NewMovie builds the movie handler.
func NewMovie(cfg *config.Config, client *renamer.Client, logger *slog.Logger) *Handler {
	return &Handler{
		kind:      media.KindMovie,
		settings:  cfg.Movies,
		cfg:       cfg,
		client:    client,
		logger:    componentLogger(logger),
		db:        "themoviedb",
		subfolder: config.MoviesSubfolder,
		template: func(root string) string {
			return root + "/{n} ({y})/{n} ({y})"
		},
		title: parse.MovieTitle,
	}
}

func componentLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return logger.With(logging.FieldComponent, "video")
}

// Add renames the request's source into the library and returns the titles
// that were added plus the sources skipped as duplicates.
func (h *Handler) Add(ctx context.Context, req *media.Request) (parse.Outcome, error) {
	log := logging.WithContext(ctx, h.logger)

	root, err := h.resolveRoot()
	if err != nil {
		return parse.Outcome{}, err
	}

	if h.settings.IgnoreSubs && !req.SingleFile {
		removed, err := stripNonVideo(req.Path)
		if err != nil {
			return parse.Outcome{}, err
		}
		if len(removed) > 0 {
			log.Info("removed auxiliary files", "count", len(removed))
		}
	}

	inv := renamer.Invocation{
		Path:    req.Path,
		DB:      h.db,
		Format:  h.template(root),
		Action:  "move",
		Strict:  h.settings.Strict,
		LogFile: h.logFile(),
	}

	log.Info("running renamer", "db", h.db, "strict", inv.Strict)
	output, runErr := h.client.Rename(ctx, inv)
	return h.ProcessOutput(output, req.Path, runErr)
}

// ProcessOutput parses raw renamer output into an outcome and rebuilds
// human-readable titles for the added entries. Added paths that do not match
// the kind's destination shape are silently dropped; if that filtering leaves
// nothing, the whole run is a no-match failure listing the raw identifiers.
func (h *Handler) ProcessOutput(output, sourcePath string, runErr error) (parse.Outcome, error) {
	outcome := parse.RenameOutcome(output)
	if outcome.Empty() {
		if runErr != nil {
			return parse.Outcome{}, services.Wrap(services.ErrExternalTool, "video", "rename", output, runErr)
		}
		return parse.Outcome{}, services.Wrap(services.ErrNoMatch, "video", "rename",
			"no files matched for "+sourcePath+": "+strings.TrimSpace(output), nil)
	}

	if len(outcome.Added) == 0 {
		return outcome, nil
	}

	titles := make([]string, 0, len(outcome.Added))
	for _, dest := range outcome.Added {
		if title, ok := h.title(dest); ok {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		return parse.Outcome{}, services.Wrap(services.ErrNoMatch, "video", "rename",
			"no recognizable titles among "+strings.Join(outcome.Added, ", "), nil)
	}
	outcome.Added = titles
	return outcome, nil
}

// resolveRoot returns the destination library root. A configured override
// must already exist; the default under the media directory is created on
// demand.
func (h *Handler) resolveRoot() (string, error) {
	if folder := strings.TrimSpace(h.settings.Folder); folder != "" {
		if !fileutil.IsDir(folder) {
			return "", services.Wrap(services.ErrConfiguration, "video", "resolve root",
				"destination folder not found: "+folder, nil)
		}
		return folder, nil
	}
	root := h.cfg.LibraryRoot("", h.subfolder)
	if err := fileutil.EnsureDir(root); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "video", "resolve root", "create "+root, err)
	}
	return root, nil
}

func (h *Handler) logFile() string {
	if strings.TrimSpace(h.cfg.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(h.cfg.Paths.LogDir, "renamer.log")
}

// stripNonVideo deletes every regular file under dir whose extension is not a
// known video container. The removal is irreversible; callers opt in through
// the ignore_subs setting.
func stripNonVideo(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "video", "strip auxiliary files", "read "+dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, services.Wrap(services.ErrValidation, "video", "strip auxiliary files", "remove "+path, err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}
