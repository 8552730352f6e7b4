package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"curator/internal/config"
)

const userAgent = "Curator-Go/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	// Success reports a completed run with the files that were added to the
	// library and the ones skipped as duplicates.
	Success(ctx context.Context, added, skipped []string) error
	// Failure reports a failed run with a human-readable detail line.
	Failure(ctx context.Context, detail string) error
	// Test sends a delivery check so users can verify their credentials.
	Test(ctx context.Context) error
}

// NewService builds a notification service backed by Pushover when
// configured. When token or user key is missing, a noop implementation is
// returned so callers never need to branch on configuration.
func NewService(cfg *config.Config) Service {
	token := strings.TrimSpace(cfg.Notifications.Token)
	user := strings.TrimSpace(cfg.Notifications.User)
	if token == "" || user == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &pushoverService{
		endpoint: strings.TrimSpace(cfg.Notifications.BaseURL),
		token:    token,
		user:     user,
		client:   &http.Client{Timeout: timeout},
	}
}

type pushoverService struct {
	endpoint string
	token    string
	user     string
	client   *http.Client
}

func (p *pushoverService) Success(ctx context.Context, added, skipped []string) error {
	var builder strings.Builder
	switch {
	case len(added) == 0 && len(skipped) > 0:
		builder.WriteString("Nothing added, all files already in the library")
	case len(skipped) == 0:
		fmt.Fprintf(&builder, "Added %d file(s) to the library", len(added))
	default:
		fmt.Fprintf(&builder, "Added %d file(s), skipped %d duplicate(s)", len(added), len(skipped))
	}
	for _, name := range added {
		builder.WriteString("\n+ ")
		builder.WriteString(name)
	}
	for _, name := range skipped {
		builder.WriteString("\n= ")
		builder.WriteString(name)
	}
	return p.send(ctx, "Curator - Complete", builder.String())
}

func (p *pushoverService) Failure(ctx context.Context, detail string) error {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "unknown error"
	}
	return p.send(ctx, "Curator - Failed", detail)
}

func (p *pushoverService) Test(ctx context.Context) error {
	return p.send(ctx, "Curator - Test", "Notification system test")
}

func (p *pushoverService) send(ctx context.Context, title, message string) error {
	if p == nil || p.client == nil {
		return nil
	}

	form := url.Values{}
	form.Set("token", p.token)
	form.Set("user", p.user)
	form.Set("title", title)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build pushover request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send pushover notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("pushover returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Success(context.Context, []string, []string) error { return nil }
func (noopService) Failure(context.Context, string) error             { return nil }
func (noopService) Test(context.Context) error                        { return nil }
