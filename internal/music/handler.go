package music

import (
	"context"
	"log/slog"
	"strings"

	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/parse"
	"curator/internal/services"
	"curator/internal/services/tagger"
)

// Handler drives the external tagger for music imports.
type Handler struct {
	client *tagger.Client
	logger *slog.Logger
}

// New builds the music handler.
func New(client *tagger.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		client: client,
		logger: logger.With(logging.FieldComponent, "music"),
	}
}

// Add imports the request's source through the tagger. Single-track mode is
// selected by the caller's explicit flag or implied by a single-file source.
func (h *Handler) Add(ctx context.Context, req *media.Request) (parse.Outcome, error) {
	single := req.SingleTrack || req.SingleFile
	log := logging.WithContext(ctx, h.logger)
	log.Info("running tagger", "single_track", single)

	output, runErr := h.client.Import(ctx, req.Path, single)
	return h.ProcessOutput(output, req.Path, single, runErr)
}

// ProcessOutput parses tagger output into an outcome. The output is parsed
// even when the tagger exited non-zero; confirmations it emitted before
// failing still count. An empty outcome surfaces the run error when there is
// one, else a no-match failure.
func (h *Handler) ProcessOutput(output, sourcePath string, single bool, runErr error) (parse.Outcome, error) {
	var outcome parse.Outcome
	if single {
		outcome = parse.TaggerSingleOutcome(output)
	} else {
		outcome = parse.TaggerBatchOutcome(output)
	}
	if outcome.Empty() {
		if runErr != nil {
			return parse.Outcome{}, services.Wrap(services.ErrExternalTool, "music", "import", output, runErr)
		}
		return parse.Outcome{}, services.Wrap(services.ErrNoMatch, "music", "import",
			"no tracks matched for "+sourcePath+": "+strings.TrimSpace(output), nil)
	}
	return outcome, nil
}
