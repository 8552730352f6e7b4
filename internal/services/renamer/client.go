package renamer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/services"
)

// Invocation describes one rename run. Built once per Add call by a media
// handler; never shared.
type Invocation struct {
	Path   string
	DB     string
	Format string
	Action string
	Strict bool
	// LogFile enables the tool's own logging when non-empty.
	LogFile string
}

// Client wraps renaming tool CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
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

// New constructs a renamer client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("renamer binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Rename executes the tool and returns its combined output. A non-zero exit
// is not an error by itself; the tool exits non-zero on partial failures
// whose detail only the output parser can judge, so the captured text is
// returned alongside the run error.
func (c *Client) Rename(ctx context.Context, inv Invocation) (string, error) {
	if strings.TrimSpace(inv.Path) == "" {
		return "", errors.New("rename path required")
	}
	action := inv.Action
	if action == "" {
		action = "move"
	}

	args := []string{"rename", inv.Path, "--db", inv.DB, "--format", inv.Format, "--action", action}
	if inv.Strict {
		args = append(args, "-strict")
	} else {
		args = append(args, "-non-strict")
	}
	if inv.LogFile != "" {
		args = append(args, "--log-file", inv.LogFile, "--log", "all")
	}

	var capture services.CaptureLines
	err := c.exec.Run(ctx, c.binary, args, capture.Append)
	return capture.String(), err
}

// Extract unpacks archives found under path into the sibling
// "<name>.extracted" directory and returns that directory. The run fails
// when the tool exits non-zero or produced nothing.
func (c *Client) Extract(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("extract path required")
	}
	dest := ExtractedPath(path)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("create extraction directory: %w", err)
	}

	var capture services.CaptureLines
	if err := c.exec.Run(ctx, c.binary, []string{"-extract", path, "--output", dest}, capture.Append); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "renamer", "extract", capture.String(), err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", fmt.Errorf("inspect extraction output: %w", err)
	}
	if len(entries) == 0 {
		return "", services.Wrap(services.ErrExternalTool, "renamer", "extract", "archive produced no files: "+capture.String(), nil)
	}
	return dest, nil
}

// ExtractedPath returns the temporary directory extraction writes into for
// the given source path.
func ExtractedPath(path string) string {
	cleaned := filepath.Clean(path)
	return filepath.Join(filepath.Dir(cleaned), filepath.Base(cleaned)+".extracted")
}
