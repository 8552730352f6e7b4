package processor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"curator/internal/config"
	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/parse"
	"curator/internal/services"
	"curator/internal/services/renamer"
)

// maxExtractionDepth caps archive-in-archive recursion. Extraction output is
// normally flat; the cap turns a malicious nesting into a clean failure.
const maxExtractionDepth = 3

// archiveExtensions are the compressed formats the renamer can unpack.
var archiveExtensions = map[string]struct{}{
	".zip": {},
	".rar": {},
	".7z":  {},
}

// Handler is the shared media-handler contract. Each of the four kinds
// implements it.
type Handler interface {
	Add(ctx context.Context, req *media.Request) (parse.Outcome, error)
}

// Notifier is the subset of the notification service the processor uses.
type Notifier interface {
	Success(ctx context.Context, added, skipped []string) error
	Failure(ctx context.Context, detail string) error
}

// TorrentRemover deletes the torrent behind an imported source path.
type TorrentRemover interface {
	RemoveBySource(ctx context.Context, sourcePath string) error
}

// Extractor unpacks archives into a sibling directory and returns its path.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Options wires the processor's collaborators. Handlers for disabled or
// unconfigured kinds may be nil; dispatching to a nil handler is a
// configuration error.
type Options struct {
	Config    *config.Config
	Logger    *slog.Logger
	Notifier  Notifier
	Extractor Extractor
	Remover   TorrentRemover

	TV        Handler
	Movie     Handler
	Music     Handler
	Audiobook Handler
}

// RunOptions carry the per-invocation overrides from the CLI.
type RunOptions struct {
	// Kind forces classification instead of the directory convention.
	Kind media.Kind
	// SearchOverride replaces the cleaned folder name as the book query.
	SearchOverride string
	// SingleTrack forces the tagger's single-track mode.
	SingleTrack bool
	// KeepFiles suppresses source removal for this run only.
	KeepFiles bool
}

// Processor orchestrates one request start to finish.
type Processor struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   Options
}

// New builds a processor from wired collaborators.
func New(opts Options) (*Processor, error) {
	if opts.Config == nil {
		return nil, errors.New("processor requires configuration")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:    opts.Config,
		logger: logger.With(logging.FieldComponent, "processor"),
		opts:   opts,
	}, nil
}

// Run processes one path to completion. Every failure is funneled through the
// failure notification before being returned; the caller only maps the error
// to an exit status.
func (p *Processor) Run(ctx context.Context, path string, runOpts RunOptions) (parse.Outcome, error) {
	ctx = services.WithRequestID(ctx, uuid.NewString())

	outcome, err := p.process(ctx, path, runOpts, 0)
	if err != nil {
		log := logging.WithContext(ctx, p.logger)
		log.Error("run failed", "error", err)
		if p.opts.Notifier != nil {
			if notifyErr := p.opts.Notifier.Failure(ctx, err.Error()); notifyErr != nil {
				log.Warn("failure notification not delivered", "error", notifyErr)
			}
		}
		return parse.Outcome{}, err
	}
	return outcome, nil
}

func (p *Processor) process(ctx context.Context, path string, runOpts RunOptions, depth int) (parse.Outcome, error) {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	info, err := os.Stat(cleaned)
	if err != nil {
		return parse.Outcome{}, services.Wrap(services.ErrValidation, "processor", "stat", cleaned, err)
	}

	if p.isArchive(cleaned, info.IsDir()) {
		return p.extractAndRecurse(ctx, cleaned, runOpts, depth)
	}

	request, err := media.Classify(cleaned, runOpts.Kind)
	if err != nil {
		return parse.Outcome{}, err
	}
	request.SearchOverride = runOpts.SearchOverride
	request.SingleTrack = runOpts.SingleTrack
	request.SingleFile = !info.IsDir()

	ctx = services.WithKind(ctx, string(request.Kind))
	ctx = services.WithSource(ctx, request.Path)
	log := logging.WithContext(ctx, p.logger)
	log.Info("classified request", "name", request.Name)

	if !p.cfg.KindEnabled(string(request.Kind)) {
		return parse.Outcome{}, services.Wrap(services.ErrConfiguration, "processor", "dispatch",
			request.Kind.Label()+" processing is not enabled", nil)
	}

	if !request.SingleFile {
		names, err := fileutil.SortedNames(request.Path)
		if err != nil {
			return parse.Outcome{}, services.Wrap(services.ErrValidation, "processor", "inspect source", request.Path, err)
		}
		if len(names) == 0 {
			return parse.Outcome{}, services.Wrap(services.ErrValidation, "processor", "inspect source",
				"source directory is empty: "+request.Path, nil)
		}
	}

	handler := p.handlerFor(request.Kind)
	if handler == nil {
		return parse.Outcome{}, services.Wrap(services.ErrConfiguration, "processor", "dispatch",
			"no handler available for "+request.Kind.Label(), nil)
	}

	// Handlers may re-root the request (single-file normalization moves the
	// source into a folder); the torrent remover still needs the path the
	// client downloaded to.
	downloadPath := request.Path
	outcome, err := handler.Add(ctx, request)
	if err != nil {
		return parse.Outcome{}, err
	}
	return p.reconcile(ctx, request, downloadPath, outcome, runOpts)
}

// extractAndRecurse unpacks the archive and re-enters the pipeline on the
// extracted contents. The extracted directory is always a temporary artifact
// and is removed regardless of the retention policy.
func (p *Processor) extractAndRecurse(ctx context.Context, path string, runOpts RunOptions, depth int) (parse.Outcome, error) {
	if depth >= maxExtractionDepth {
		return parse.Outcome{}, services.Wrap(services.ErrValidation, "processor", "extract",
			"archive nesting exceeds depth limit at "+path, nil)
	}
	if p.opts.Extractor == nil {
		return parse.Outcome{}, services.Wrap(services.ErrConfiguration, "processor", "extract",
			"archive found but no extraction tool is configured", nil)
	}

	log := logging.WithContext(ctx, p.logger)
	log.Info("extracting archive", "path", path, "depth", depth)

	extracted, err := p.opts.Extractor.Extract(ctx, path)
	if err != nil {
		return parse.Outcome{}, err
	}
	defer func() {
		if err := os.RemoveAll(extracted); err != nil {
			log.Warn("could not remove extracted files", "path", extracted, "error", err)
		}
	}()

	outcome, err := p.process(ctx, extracted, runOpts, depth+1)
	if err != nil {
		return parse.Outcome{}, err
	}
	// The archive itself is a source file governed by the retention policy;
	// the extracted directory above is always temporary.
	p.applyRetention(ctx, path, outcome, runOpts)
	return outcome, nil
}

// reconcile validates the outcome, applies the retention policy, notifies,
// and optionally removes the source torrent. Retention follows the request
// path, which the handler may have re-rooted; torrent matching uses the
// original download path.
func (p *Processor) reconcile(ctx context.Context, request *media.Request, downloadPath string, outcome parse.Outcome, runOpts RunOptions) (parse.Outcome, error) {
	log := logging.WithContext(ctx, p.logger)

	if outcome.Empty() {
		return parse.Outcome{}, services.Wrap(services.ErrNoMatch, "processor", "reconcile",
			"no files found for "+request.Path, nil)
	}

	p.applyRetention(ctx, request.Path, outcome, runOpts)

	if p.opts.Notifier != nil {
		if err := p.opts.Notifier.Success(ctx, outcome.Added, outcome.Skipped); err != nil {
			log.Warn("success notification not delivered", "error", err)
		}
	}

	if p.opts.Remover != nil && !outcome.HasSkips() {
		if err := p.opts.Remover.RemoveBySource(ctx, downloadPath); err != nil {
			log.Warn("torrent removal failed", "error", err)
		}
	}

	log.Info("request complete", "added", len(outcome.Added), "skipped", len(outcome.Skipped))
	return outcome, nil
}

// applyRetention removes the source path unless the policy or the caller
// asked to keep it. Removal failures are logged, not fatal; the media has
// already reached the library.
func (p *Processor) applyRetention(ctx context.Context, path string, outcome parse.Outcome, runOpts RunOptions) {
	log := logging.WithContext(ctx, p.logger)
	keep := runOpts.KeepFiles || p.cfg.Cleanup.KeepFiles ||
		(outcome.HasSkips() && p.cfg.Cleanup.KeepIfSkips)
	if keep {
		log.Info("keeping source files", "path", path, "skips", len(outcome.Skipped))
		return
	}
	if err := fileutil.RemoveSource(path); err != nil {
		log.Warn("could not remove source", "path", path, "error", err)
		return
	}
	log.Info("removed source", "path", path)
}

func (p *Processor) handlerFor(kind media.Kind) Handler {
	switch kind {
	case media.KindTV:
		return p.opts.TV
	case media.KindMovie:
		return p.opts.Movie
	case media.KindMusic:
		return p.opts.Music
	case media.KindAudiobook:
		return p.opts.Audiobook
	default:
		return nil
	}
}

// isArchive reports whether the path itself, or any immediate child of a
// directory, carries a compressed-archive extension.
func (p *Processor) isArchive(path string, isDir bool) bool {
	if !isDir {
		return hasArchiveExt(path)
	}
	names, err := fileutil.SortedNames(path)
	if err != nil {
		return false
	}
	for _, name := range names {
		if hasArchiveExt(name) {
			return true
		}
	}
	return false
}

func hasArchiveExt(name string) bool {
	_, ok := archiveExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

var _ Extractor = (*renamer.Client)(nil)
