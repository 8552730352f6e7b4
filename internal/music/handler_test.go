package music_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/music"
	"curator/internal/services"
	"curator/internal/services/tagger"
)

type stubExecutor struct {
	lines []string
	err   error
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.args = append(s.args, append([]string(nil), args...))
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

func newHandler(t *testing.T, exec *stubExecutor) *music.Handler {
	t.Helper()
	client, err := tagger.New("beet", filepath.Join(t.TempDir(), "tagger.log"), tagger.WithExecutor(exec))
	if err != nil {
		t.Fatalf("tagger.New returned error: %v", err)
	}
	return music.New(client, logging.NewNop())
}

func TestAddBatchImport(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"Tagging:",
		"    Sleater-Kinney - The Woods",
		"URL:",
		"    https://musicbrainz.org/release/abc",
		"/dl/Music/Old Album (12 items)",
		"Skipping.",
	}}
	handler := newHandler(t, exec)

	outcome, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/batch", Kind: media.KindMusic})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(outcome.Added) != 1 || outcome.Added[0] != "Sleater-Kinney - The Woods" {
		t.Fatalf("added = %v", outcome.Added)
	}
	if len(outcome.Skipped) != 1 || outcome.Skipped[0] != "/dl/Music/Old Album" {
		t.Fatalf("skipped = %v", outcome.Skipped)
	}
	if exec.args[0][2] != "-ql" {
		t.Fatalf("expected batch flags, got %v", exec.args[0])
	}
}

func TestAddSingleTrackByFlag(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"Tagging track: Artist - Song",
		"URL:",
		"    https://musicbrainz.org/recording/xyz",
	}}
	handler := newHandler(t, exec)

	outcome, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/loose", Kind: media.KindMusic, SingleTrack: true})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(outcome.Added) != 1 || outcome.Added[0] != "Artist - Song" {
		t.Fatalf("added = %v", outcome.Added)
	}
	if exec.args[0][2] != "-qsl" {
		t.Fatalf("expected singleton flags, got %v", exec.args[0])
	}
}

func TestAddSingleTrackImpliedBySingleFile(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"Tagging track: Artist - Song",
		"URL:",
		"    https://musicbrainz.org/recording/xyz",
	}}
	handler := newHandler(t, exec)

	if _, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/track.mp3", Kind: media.KindMusic, SingleFile: true}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if exec.args[0][2] != "-qsl" {
		t.Fatalf("expected singleton flags, got %v", exec.args[0])
	}
}

func TestAddFailsWhenNothingMatched(t *testing.T) {
	exec := &stubExecutor{lines: []string{"No files imported."}}
	handler := newHandler(t, exec)

	_, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/unknown", Kind: media.KindMusic})
	if !errors.Is(err, services.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestAddKeepsConfirmationsWhenTaggerExitsNonZero(t *testing.T) {
	exec := &stubExecutor{
		lines: []string{
			"Tagging:",
			"    Sleater-Kinney - The Woods",
			"URL:",
			"    https://musicbrainz.org/release/abc",
		},
		err: errors.New("exit status 1"),
	}
	handler := newHandler(t, exec)

	outcome, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/batch", Kind: media.KindMusic})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(outcome.Added) != 1 || outcome.Added[0] != "Sleater-Kinney - The Woods" {
		t.Fatalf("added = %v", outcome.Added)
	}
}

func TestAddRunErrorWithoutOutputIsExternalToolFailure(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit status 2")}
	handler := newHandler(t, exec)

	_, err := handler.Add(context.Background(), &media.Request{Path: "/dl/Music/broken", Kind: media.KindMusic})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}
