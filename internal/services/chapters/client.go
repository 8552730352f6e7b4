// Package chapters wraps the external audiobook chapter builder. One
// invocation consumes a folder of per-track audio plus book metadata and
// produces a single chaptered container file in that folder.
//
// The tool reports success with the line
//
//	Audiobook '<name>.<ext>' created succsessfully!
//
// (misspelling verbatim). Absence of the marker is a hard failure and the
// raw output is surfaced as the error detail.
package chapters

import (
	"context"
	"errors"
	"strings"

	"curator/internal/parse"
	"curator/internal/services"
	"curator/internal/textutil"
)

// Job describes one chapter build: the folder holding the part's tracks and
// the metadata embedded into the container. All text fields are reduced to
// ASCII before being passed as positional arguments.
type Job struct {
	PartPath   string
	Author     string
	LongTitle  string
	ShortTitle string
	Genre      string
	Year       string
	Ext        string
}

// Client wraps chapter builder CLI interactions.
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

// New constructs a chapter builder client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("chapterizer binary required")
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

// Build runs the tool for one part and returns the produced filename
// (relative to the part folder) parsed from the success marker.
func (c *Client) Build(ctx context.Context, job Job) (string, error) {
	if strings.TrimSpace(job.PartPath) == "" {
		return "", errors.New("part path required")
	}

	args := []string{
		job.PartPath,
		textutil.ASCIISafe(job.Author),
		textutil.ASCIISafe(job.LongTitle),
		textutil.ASCIISafe(job.ShortTitle),
		textutil.ASCIISafe(job.Genre),
		textutil.ASCIISafe(job.Year),
		job.Ext,
	}

	var capture services.CaptureLines
	runErr := c.exec.Run(ctx, c.binary, args, capture.Append)
	output := capture.String()

	name, ext, ok := parse.ChapterSuccess(output)
	if !ok {
		if runErr != nil {
			return "", services.Wrap(services.ErrExternalTool, "chapters", "build", output, runErr)
		}
		return "", services.Wrap(services.ErrExternalTool, "chapters", "build", "missing success marker: "+output, nil)
	}
	return name + "." + ext, nil
}
