package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFolders(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeBooks()
	c.normalizeNotifications()
	c.normalizeTransmission()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFolders() error {
	var err error
	if c.TV.Folder, err = expandPath(c.TV.Folder); err != nil {
		return fmt.Errorf("tv.folder: %w", err)
	}
	if c.Movies.Folder, err = expandPath(c.Movies.Folder); err != nil {
		return fmt.Errorf("movies.folder: %w", err)
	}
	if c.Audiobooks.Folder, err = expandPath(c.Audiobooks.Folder); err != nil {
		return fmt.Errorf("audiobooks.folder: %w", err)
	}
	if c.Audiobooks.JunkWordsFile, err = expandPath(c.Audiobooks.JunkWordsFile); err != nil {
		return fmt.Errorf("audiobooks.junk_words_file: %w", err)
	}
	if c.Music.LogFile, err = expandPath(c.Music.LogFile); err != nil {
		return fmt.Errorf("music.log_file: %w", err)
	}
	if c.Music.LogFile == "" && c.Paths.LogDir != "" {
		c.Music.LogFile = filepath.Join(c.Paths.LogDir, "tagger.log")
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Renamer = strings.TrimSpace(c.Tools.Renamer)
	if c.Tools.Renamer == "" {
		c.Tools.Renamer = defaultRenamerBinary
	}
	c.Tools.Tagger = strings.TrimSpace(c.Tools.Tagger)
	if c.Tools.Tagger == "" {
		c.Tools.Tagger = defaultTaggerBinary
	}
	c.Tools.Chapterizer = strings.TrimSpace(c.Tools.Chapterizer)
	if c.Tools.Chapterizer == "" {
		c.Tools.Chapterizer = defaultChapterizerBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeBooks() {
	c.Books.APIKey = strings.TrimSpace(c.Books.APIKey)
	if c.Books.APIKey == "" {
		if value, ok := os.LookupEnv("CURATOR_BOOKS_API_KEY"); ok {
			c.Books.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("GOOGLE_BOOKS_API_KEY"); ok {
			c.Books.APIKey = strings.TrimSpace(value)
		}
	}
	c.Books.BaseURL = strings.TrimSpace(c.Books.BaseURL)
	if c.Books.BaseURL == "" {
		c.Books.BaseURL = defaultBooksBaseURL
	}
	if c.Books.RequestTimeout <= 0 {
		c.Books.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.Token = strings.TrimSpace(c.Notifications.Token)
	if c.Notifications.Token == "" {
		if value, ok := os.LookupEnv("PUSHOVER_TOKEN"); ok {
			c.Notifications.Token = strings.TrimSpace(value)
		}
	}
	c.Notifications.User = strings.TrimSpace(c.Notifications.User)
	if c.Notifications.User == "" {
		if value, ok := os.LookupEnv("PUSHOVER_USER"); ok {
			c.Notifications.User = strings.TrimSpace(value)
		}
	}
	c.Notifications.BaseURL = strings.TrimSpace(c.Notifications.BaseURL)
	if c.Notifications.BaseURL == "" {
		c.Notifications.BaseURL = defaultPushoverBaseURL
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeTransmission() {
	c.Transmission.URL = strings.TrimSpace(c.Transmission.URL)
	if c.Transmission.URL == "" {
		c.Transmission.URL = defaultTransmissionURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" && c.Paths.LogDir != "" {
		c.Logging.File = filepath.Join(c.Paths.LogDir, "curator.log")
	}
}
