package renamer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/services/renamer"
)

type stubExecutor struct {
	lines   []string
	err     error
	calls   int
	args    [][]string
	onRun   func(args []string)
	binName string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls++
	s.binName = binary
	s.args = append(s.args, append([]string(nil), args...))
	if s.onRun != nil {
		s.onRun(args)
	}
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := renamer.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRenameBuildsArguments(t *testing.T) {
	exec := &stubExecutor{lines: []string{"[MOVE] Rename [/dl/a.mkv] to [/media/TV/Show/Season 1/Show.S01E01.mkv]"}}
	client, err := renamer.New("filebot", renamer.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out, err := client.Rename(context.Background(), renamer.Invocation{
		Path:   "/dl/TV/Show.S01E01",
		DB:     "thetvdb",
		Format: "/media/TV/{n}/Season {s}/{n}.{s00e00}",
		Action: "move",
		Strict: true,
	})
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if !strings.Contains(out, "Show.S01E01") {
		t.Fatalf("missing captured output: %q", out)
	}

	want := []string{
		"rename", "/dl/TV/Show.S01E01",
		"--db", "thetvdb",
		"--format", "/media/TV/{n}/Season {s}/{n}.{s00e00}",
		"--action", "move",
		"-strict",
	}
	got := exec.args[0]
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRenameNonStrictAndLogging(t *testing.T) {
	exec := &stubExecutor{}
	client, err := renamer.New("filebot", renamer.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Rename(context.Background(), renamer.Invocation{
		Path:    "/dl/x",
		DB:      "themoviedb",
		Format:  "fmt",
		LogFile: "/tmp/renamer.log",
	}); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	joined := strings.Join(exec.args[0], " ")
	if !strings.Contains(joined, "-non-strict") {
		t.Fatalf("expected -non-strict flag in %q", joined)
	}
	if !strings.Contains(joined, "--log-file /tmp/renamer.log") {
		t.Fatalf("expected log flags in %q", joined)
	}
	if !strings.Contains(joined, "--action move") {
		t.Fatalf("expected default move action in %q", joined)
	}
}

func TestRenameReturnsOutputWithRunError(t *testing.T) {
	exec := &stubExecutor{lines: []string{"Failed to identify [/dl/garbage]"}, err: errors.New("exit status 1")}
	client, err := renamer.New("filebot", renamer.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	out, err := client.Rename(context.Background(), renamer.Invocation{Path: "/dl/garbage", DB: "thetvdb", Format: "fmt"})
	if err == nil {
		t.Fatal("expected run error")
	}
	if !strings.Contains(out, "Failed to identify") {
		t.Fatalf("expected output captured despite error, got %q", out)
	}
}

func TestExtractReturnsSiblingDirectory(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "Album.zip")
	if err := os.WriteFile(archive, []byte("zip"), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	exec := &stubExecutor{onRun: func(args []string) {
		dest := args[len(args)-1]
		if err := os.WriteFile(filepath.Join(dest, "track01.mp3"), nil, 0o644); err != nil {
			t.Fatalf("stub write: %v", err)
		}
	}}
	client, err := renamer.New("filebot", renamer.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	dest, err := client.Extract(context.Background(), archive)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if dest != filepath.Join(dir, "Album.zip.extracted") {
		t.Fatalf("unexpected extraction path %q", dest)
	}
	if exec.args[0][0] != "-extract" || exec.args[0][1] != archive {
		t.Fatalf("unexpected args %v", exec.args[0])
	}
}

func TestExtractFailsWhenNothingProduced(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "Empty.rar")
	if err := os.WriteFile(archive, []byte("rar"), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	client, err := renamer.New("filebot", renamer.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Extract(context.Background(), archive); err == nil {
		t.Fatal("expected error for empty extraction")
	}
}
