package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTypes(); err != nil {
		return err
	}
	if err := c.validateAudiobooks(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateTransmission(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		return errors.New("paths.media_dir must be set")
	}
	return nil
}

func (c *Config) validateTypes() error {
	if !c.Types.TV && !c.Types.Movies && !c.Types.Music && !c.Types.Audiobooks {
		return errors.New("types: at least one media kind must be enabled")
	}
	return nil
}

func (c *Config) validateAudiobooks() error {
	if c.Audiobooks.MaxPartSeconds <= 0 {
		return errors.New("audiobooks.max_part_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	hasToken := c.Notifications.Token != ""
	hasUser := c.Notifications.User != ""
	if hasToken != hasUser {
		return errors.New("notifications: token and user must be set together")
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateTransmission() error {
	if !c.Transmission.Enabled {
		return nil
	}
	parsed, err := url.Parse(c.Transmission.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("transmission.url is not a valid URL: %q", c.Transmission.URL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
