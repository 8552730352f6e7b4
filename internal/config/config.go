package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains base directory configuration.
type Paths struct {
	MediaDir string `toml:"media_dir"`
	LogDir   string `toml:"log_dir"`
}

// Types controls which media kinds the pipeline accepts.
type Types struct {
	TV         bool `toml:"tv"`
	Movies     bool `toml:"movies"`
	Music      bool `toml:"music"`
	Audiobooks bool `toml:"audiobooks"`
}

// Video contains settings shared by the TV and movie handlers. Folder
// overrides the default library root and must exist when set.
type Video struct {
	Folder     string `toml:"folder"`
	Strict     bool   `toml:"strict"`
	IgnoreSubs bool   `toml:"ignore_subs"`
}

// Music contains settings for the music tagger handler.
type Music struct {
	LogFile string `toml:"log_file"`
}

// Audiobooks contains settings for the audiobook handler.
type Audiobooks struct {
	Folder         string `toml:"folder"`
	Chapterize     bool   `toml:"chapterize"`
	MaxPartSeconds int    `toml:"max_part_seconds"`
	JunkWordsFile  string `toml:"junk_words_file"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	Renamer     string `toml:"renamer"`
	Tagger      string `toml:"tagger"`
	Chapterizer string `toml:"chapterizer"`
	FFprobe     string `toml:"ffprobe"`
}

// Books contains configuration for the book metadata lookup API.
type Books struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Notifications contains configuration for Pushover push notifications.
type Notifications struct {
	Token          string `toml:"token"`
	User           string `toml:"user"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Transmission contains configuration for the optional torrent removal step.
type Transmission struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

// Cleanup controls the source-retention policy applied after reconciliation.
type Cleanup struct {
	KeepFiles   bool `toml:"keep_files"`
	KeepIfSkips bool `toml:"keep_if_skips"`
}

// Logging contains logger configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Config is the root configuration document.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Types         Types         `toml:"types"`
	TV            Video         `toml:"tv"`
	Movies        Video         `toml:"movies"`
	Music         Music         `toml:"music"`
	Audiobooks    Audiobooks    `toml:"audiobooks"`
	Tools         Tools         `toml:"tools"`
	Books         Books         `toml:"books"`
	Notifications Notifications `toml:"notifications"`
	Transmission  Transmission  `toml:"transmission"`
	Cleanup       Cleanup       `toml:"cleanup"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the primary location probed for the config file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required before a run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LibraryRoot returns the destination library root for the named kind
// subfolder, honoring a configured override.
func (c *Config) LibraryRoot(override, subfolder string) string {
	if folder := strings.TrimSpace(override); folder != "" {
		return folder
	}
	return filepath.Join(c.Paths.MediaDir, subfolder)
}

// KindEnabled reports whether the given types flag allows processing.
func (c *Config) KindEnabled(kind string) bool {
	switch strings.ToLower(kind) {
	case "tv":
		return c.Types.TV
	case "movie":
		return c.Types.Movies
	case "music":
		return c.Types.Music
	case "audiobook":
		return c.Types.Audiobooks
	default:
		return false
	}
}

// CreateSample writes the embedded sample configuration to the given path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Clean(trimmed), nil
}

// ExpandPath resolves ~ and cleans the provided path. Exposed for the CLI.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
