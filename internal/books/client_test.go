package books

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"curator/internal/services"
)

func newTestClient(baseURL, key string) *Client {
	return New(Config{APIKey: key, BaseURL: baseURL, RequestTimeout: 5 * time.Second})
}

func volumesPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{
				"id": "vol-1",
				"volumeInfo": map[string]any{
					"title":         "Yes Please",
					"authors":       []string{"Amy Poehler"},
					"publishedDate": "2014-10-28",
					"categories":    []string{"humor", "biography"},
					"imageLinks": map[string]any{
						"thumbnail": "http://covers.example/img?id=vol-1&edge=curl",
					},
				},
			},
			{
				"id":         "vol-2",
				"volumeInfo": map[string]any{"title": "Wrong Book"},
			},
		},
	}
}

func TestSearchUsesFirstCandidate(t *testing.T) {
	var gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(volumesPayload())
	}))
	defer server.Close()

	info, err := newTestClient(server.URL, "secret").Search(context.Background(), "Yes Please")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "Yes Please" || gotKey != "secret" {
		t.Fatalf("unexpected request q=%q key=%q", gotQuery, gotKey)
	}
	if info.ID != "vol-1" || info.ShortTitle != "Yes Please" {
		t.Fatalf("unexpected candidate %+v", info)
	}
	if info.LongTitle != "Yes Please" {
		t.Fatalf("long title without subtitle should equal short title, got %q", info.LongTitle)
	}
	if info.Year != "2014" {
		t.Fatalf("year = %q", info.Year)
	}
	if info.Genre != "Humor" {
		t.Fatalf("genre = %q", info.Genre)
	}
	if info.Author != "Amy Poehler" {
		t.Fatalf("author = %q", info.Author)
	}
}

func TestSearchBuildsLongTitleWithSubtitle(t *testing.T) {
	payload := volumesPayload()
	items := payload["items"].([]map[string]any)
	items[0]["volumeInfo"].(map[string]any)["subtitle"] = "A Memoir"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	info, err := newTestClient(server.URL, "secret").Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if info.LongTitle != "Yes Please: A Memoir" {
		t.Fatalf("long title = %q", info.LongTitle)
	}
	if info.Subtitle != "A Memoir" {
		t.Fatalf("subtitle = %q", info.Subtitle)
	}
}

func TestSearchWithoutAPIKeyIsConfigurationError(t *testing.T) {
	_, err := newTestClient("http://unused.example", "").Search(context.Background(), "x")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "secret").Search(context.Background(), "nothing here")
	if !errors.Is(err, services.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestSearchMissingFieldsFallBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"v","volumeInfo":{"title":"Bare","publishedDate":"n.d."}}]}`))
	}))
	defer server.Close()

	info, err := newTestClient(server.URL, "secret").Search(context.Background(), "bare")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if info.Year != "" {
		t.Fatalf("expected empty year for unparsable date, got %q", info.Year)
	}
	if info.Genre != FallbackGenre {
		t.Fatalf("expected fallback genre, got %q", info.Genre)
	}
}

func TestSearchKeepsMixedCaseCategoryVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"v","volumeInfo":{"title":"B","categories":["Biography & Autobiography"]}}]}`))
	}))
	defer server.Close()

	info, err := newTestClient(server.URL, "secret").Search(context.Background(), "b")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if info.Genre != "Biography & Autobiography" {
		t.Fatalf("genre = %q", info.Genre)
	}
}

func TestSearchNormalizesShoutyCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"v","volumeInfo":{"title":"F","categories":["FICTION"]}}]}`))
	}))
	defer server.Close()

	info, err := newTestClient(server.URL, "secret").Search(context.Background(), "f")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if info.Genre != "Fiction" {
		t.Fatalf("genre = %q", info.Genre)
	}
}

func TestDownloadCoverStripsCurlParamAndIsIdempotent(t *testing.T) {
	var hits int
	var gotEdge, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		gotEdge = r.URL.Query().Get("edge")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	client := newTestClient(server.URL, "secret")

	if err := client.DownloadCover(context.Background(), server.URL+"/img?id=1&edge=curl", dest); err != nil {
		t.Fatalf("DownloadCover returned error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected one request, got %d", hits)
	}
	if gotEdge != "" {
		t.Fatalf("edge param not stripped: %q", gotEdge)
	}
	if gotUA == "" || gotUA == "go-resty" {
		t.Fatalf("expected browser-like user agent, got %q", gotUA)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "jpegdata" {
		t.Fatalf("unexpected cover content %q err=%v", data, err)
	}

	// Second call must not re-download.
	if err := client.DownloadCover(context.Background(), server.URL+"/img?id=1&edge=curl", dest); err != nil {
		t.Fatalf("repeat DownloadCover returned error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected no second request, got %d", hits)
	}
}

func TestDownloadCoverErrorStatusLeavesNoFile(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<html>blocked</html>"))
			return
		}
		_, _ = w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	client := newTestClient(server.URL, "secret")

	err := client.DownloadCover(context.Background(), server.URL+"/img?id=1", dest)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if _, statErr := os.Stat(dest); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("failed download must not leave a cover behind")
	}
	if _, statErr := os.Stat(dest + ".partial"); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("scratch file should be cleaned up")
	}

	// The next attempt must hit the host again and land the real image.
	if err := client.DownloadCover(context.Background(), server.URL+"/img?id=1", dest); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "jpegdata" {
		t.Fatalf("unexpected cover content %q err=%v", data, err)
	}
}

func TestDownloadCoverEmptyURLIsNoop(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cover.jpg")
	if err := newTestClient("http://unused.example", "k").DownloadCover(context.Background(), "", dest); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("no file should be created for empty URL")
	}
}
