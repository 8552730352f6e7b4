// Package torrents removes finished downloads from a Transmission instance
// once their content has been moved into the library. Matching is by the
// torrent's download location, case-insensitive, since the pipeline only
// knows the source path it was handed.
package torrents

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hekmon/transmissionrpc/v3"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/services"
)

// rpcClient is the subset of the Transmission RPC surface the remover needs.
type rpcClient interface {
	TorrentGet(ctx context.Context, fields []string, ids []int64) ([]transmissionrpc.Torrent, error)
	TorrentRemove(ctx context.Context, payload transmissionrpc.TorrentRemovePayload) error
}

// Remover deletes torrents whose content the pipeline has imported.
type Remover struct {
	client rpcClient
	logger *slog.Logger
}

// New builds a Remover from configuration. Returns nil when the integration
// is disabled; callers treat a nil Remover as a no-op.
func New(cfg config.Transmission, logger *slog.Logger) (*Remover, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	endpoint, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "torrents", "parse url", cfg.URL, err)
	}
	client, err := transmissionrpc.New(endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "torrents", "connect", cfg.URL, err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Remover{client: client, logger: logger.With(logging.FieldComponent, "torrents")}, nil
}

// WithClient injects a custom RPC client (primarily for tests).
func (r *Remover) WithClient(client rpcClient) *Remover {
	if client != nil {
		r.client = client
	}
	return r
}

// RemoveBySource finds the torrent whose download location matches the given
// source path and removes it from Transmission. Local data is left for the
// pipeline's own retention policy. A source with no matching torrent is not
// an error.
func (r *Remover) RemoveBySource(ctx context.Context, sourcePath string) error {
	if r == nil {
		return nil
	}
	log := logging.WithContext(ctx, r.logger)

	torrents, err := r.client.TorrentGet(ctx, []string{"id", "downloadDir", "name"}, nil)
	if err != nil {
		return services.Wrap(services.ErrTransient, "torrents", "list", "", err)
	}

	wanted := strings.ToLower(filepath.Clean(sourcePath))
	for _, torrent := range torrents {
		if torrent.ID == nil || torrent.DownloadDir == nil || torrent.Name == nil {
			continue
		}
		root := strings.ToLower(filepath.Join(*torrent.DownloadDir, *torrent.Name))
		if root != wanted {
			continue
		}
		payload := transmissionrpc.TorrentRemovePayload{IDs: []int64{*torrent.ID}}
		if err := r.client.TorrentRemove(ctx, payload); err != nil {
			return services.Wrap(services.ErrTransient, "torrents", "remove", *torrent.Name, err)
		}
		log.Info("removed torrent", "name", *torrent.Name)
		return nil
	}

	log.Info("no torrent matched source", "source", sourcePath)
	return nil
}
