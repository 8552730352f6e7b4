// Package books looks up audiobook metadata from the remote volumes API and
// downloads cover images. Only the first search candidate is ever used; the
// pipeline trusts the API's own relevance ranking.
package books

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"curator/internal/services"
)

const (
	// FallbackGenre is used when the API lists no categories.
	FallbackGenre = "Audiobook"

	// coverUserAgent mimics a browser; the image host rejects obvious bots.
	coverUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

var genreCaser = cases.Title(language.Und)

// Info is the metadata extracted from the top search candidate. Created
// fresh per request and never persisted.
type Info struct {
	ID         string
	ShortTitle string
	LongTitle  string
	Subtitle   string
	Year       string
	Genre      string
	Author     string
	CoverURL   string
}

// Client talks to the volumes API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// Config carries the client settings; mirrors the [books] config table.
type Config struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

// New constructs a metadata client. Transient HTTP failures are retried once
// with a short backoff.
func New(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(1).
		SetRetryWaitTime(2 * time.Second)
	return &Client{http: httpClient, apiKey: strings.TrimSpace(cfg.APIKey)}
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Subtitle      string   `json:"subtitle"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the API and assembles Info from the first candidate.
// A missing API key is a configuration error raised before any request.
func (c *Client) Search(ctx context.Context, query string) (*Info, error) {
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "books", "search", "metadata API key is not configured", nil)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "books", "search", "empty search query", nil)
	}

	var payload volumesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("key", c.apiKey).
		SetResult(&payload).
		Get("/volumes")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "books", "search", "metadata lookup failed", err)
	}
	if resp.IsError() {
		return nil, services.Wrap(services.ErrTransient, "books", "search",
			fmt.Sprintf("metadata API returned %d", resp.StatusCode()), nil)
	}
	if len(payload.Items) == 0 {
		return nil, services.Wrap(services.ErrNoMatch, "books", "search", "no results for \""+query+"\"", nil)
	}

	top := payload.Items[0]
	info := &Info{
		ID:         top.ID,
		ShortTitle: strings.TrimSpace(top.VolumeInfo.Title),
		Subtitle:   strings.TrimSpace(top.VolumeInfo.Subtitle),
		Year:       extractYear(top.VolumeInfo.PublishedDate),
		Genre:      firstGenre(top.VolumeInfo.Categories),
		Author:     strings.Join(top.VolumeInfo.Authors, ", "),
		CoverURL:   top.VolumeInfo.ImageLinks.Thumbnail,
	}
	info.LongTitle = info.ShortTitle
	if info.Subtitle != "" {
		info.LongTitle = info.ShortTitle + ": " + info.Subtitle
	}
	return info, nil
}

// DownloadCover fetches the cover image to destPath. Already-present files
// are left alone so repeat runs stay idempotent. The rendering query
// parameter that curls the page corner is stripped before download.
func (c *Client) DownloadCover(ctx context.Context, coverURL, destPath string) error {
	if strings.TrimSpace(coverURL) == "" {
		return nil
	}
	if _, err := os.Stat(destPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat cover: %w", err)
	}

	cleaned, err := stripCurlParam(coverURL)
	if err != nil {
		return fmt.Errorf("parse cover URL: %w", err)
	}

	// Download lands in a scratch file first; an error body from the host
	// must never sit at destPath where the idempotence check would trust it.
	partial := destPath + ".partial"
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", coverUserAgent).
		SetOutput(partial).
		Get(cleaned)
	if err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrTransient, "books", "download cover", "cover download failed", err)
	}
	if resp.IsError() {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrTransient, "books", "download cover",
			fmt.Sprintf("cover host returned %d", resp.StatusCode()), nil)
	}
	if err := os.Rename(partial, destPath); err != nil {
		return fmt.Errorf("commit cover: %w", err)
	}
	return nil
}

func extractYear(published string) string {
	return yearPattern.FindString(published)
}

// firstGenre returns the first listed category as the API spells it. Feeds
// that ship categories all-upper or all-lower get normalized to title case;
// mixed-case values pass through verbatim.
func firstGenre(categories []string) string {
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if category == strings.ToUpper(category) || category == strings.ToLower(category) {
			return genreCaser.String(strings.ToLower(category))
		}
		return category
	}
	return FallbackGenre
}

func stripCurlParam(coverURL string) (string, error) {
	parsed, err := url.Parse(coverURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Del("edge")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
