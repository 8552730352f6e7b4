package processor

import (
	"log/slog"
	"time"

	"curator/internal/audiobook"
	"curator/internal/books"
	"curator/internal/chunker"
	"curator/internal/config"
	"curator/internal/music"
	"curator/internal/notifications"
	"curator/internal/services/chapters"
	"curator/internal/services/renamer"
	"curator/internal/services/tagger"
	"curator/internal/torrents"
	"curator/internal/video"
)

// FromConfig assembles a fully wired processor. Kinds whose tools are not
// configured get nil handlers; dispatching to them surfaces a configuration
// error instead of a panic.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Processor, error) {
	opts := Options{
		Config:   cfg,
		Logger:   logger,
		Notifier: notifications.NewService(cfg),
	}

	if cfg.Tools.Renamer != "" {
		client, err := renamer.New(cfg.Tools.Renamer)
		if err != nil {
			return nil, err
		}
		opts.Extractor = client
		opts.TV = video.NewTV(cfg, client, logger)
		opts.Movie = video.NewMovie(cfg, client, logger)
	}

	if cfg.Tools.Tagger != "" && cfg.Music.LogFile != "" {
		client, err := tagger.New(cfg.Tools.Tagger, cfg.Music.LogFile)
		if err != nil {
			return nil, err
		}
		opts.Music = music.New(client, logger)
	}

	meta := books.New(books.Config{
		APIKey:         cfg.Books.APIKey,
		BaseURL:        cfg.Books.BaseURL,
		RequestTimeout: time.Duration(cfg.Books.RequestTimeout) * time.Second,
	})
	var builder audiobook.ChapterBuilder
	var prober audiobook.DurationProber
	if cfg.Tools.Chapterizer != "" {
		client, err := chapters.New(cfg.Tools.Chapterizer)
		if err != nil {
			return nil, err
		}
		builder = client
		prober = chunker.NewProber(cfg.Tools.FFprobe)
	}
	bookHandler, err := audiobook.New(cfg, meta, builder, prober, logger)
	if err != nil {
		return nil, err
	}
	opts.Audiobook = bookHandler

	remover, err := torrents.New(cfg.Transmission, logger)
	if err != nil {
		return nil, err
	}
	if remover != nil {
		opts.Remover = remover
	}

	return New(opts)
}
