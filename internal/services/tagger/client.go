// Package tagger wraps the external music tagging tool. The tool owns the
// music library location and layout; this client only starts imports and
// captures the combined output for the parsers.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/services"
)

// Client wraps tagging tool CLI interactions.
type Client struct {
	binary  string
	logFile string
	exec    services.Executor
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New constructs a tagger client. The log file records every import decision
// and is required by the tool's quiet mode.
func New(binary, logFile string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("tagger binary required")
	}
	logFile = strings.TrimSpace(logFile)
	if logFile == "" {
		return nil, errors.New("tagger log file required")
	}
	client := &Client{
		binary:  binary,
		logFile: logFile,
		exec:    services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Import runs a quiet import of path and returns the combined output. Single
// selects singleton (per-track) mode instead of album-batch mode. The log
// directory is created when missing.
func (c *Client) Import(ctx context.Context, path string, single bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("import path required")
	}
	if err := os.MkdirAll(filepath.Dir(c.logFile), 0o755); err != nil {
		return "", fmt.Errorf("create tagger log directory: %w", err)
	}

	flags := "-ql"
	if single {
		flags = "-qsl"
	}
	args := []string{"import", path, flags, c.logFile}

	var capture services.CaptureLines
	err := c.exec.Run(ctx, c.binary, args, capture.Append)
	return capture.String(), err
}
