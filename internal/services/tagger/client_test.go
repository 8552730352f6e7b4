package tagger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"curator/internal/services/tagger"
)

type stubExecutor struct {
	lines []string
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.args = append(s.args, append([]string(nil), args...))
	for _, line := range s.lines {
		onLine(line)
	}
	return nil
}

func TestNewRequiresBinaryAndLog(t *testing.T) {
	if _, err := tagger.New("", "/tmp/tagger.log"); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := tagger.New("beet", " "); err == nil {
		t.Fatal("expected error for empty log file")
	}
}

func TestImportBatchArguments(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "tagger.log")
	exec := &stubExecutor{lines: []string{"Tagging:", "    Artist - Album", "URL:", "    https://musicbrainz.org/release/x"}}
	client, err := tagger.New("beet", logFile, tagger.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out, err := client.Import(context.Background(), "/dl/Music/Artist - Album", false)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if out == "" {
		t.Fatal("expected captured output")
	}

	want := []string{"import", "/dl/Music/Artist - Album", "-ql", logFile}
	got := exec.args[0]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args = %v, want %v", got, want)
		}
	}
	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Fatalf("expected log directory to be created: %v", err)
	}
}

func TestImportSingleUsesSingletonFlags(t *testing.T) {
	exec := &stubExecutor{}
	client, err := tagger.New("beet", filepath.Join(t.TempDir(), "tagger.log"), tagger.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Import(context.Background(), "/dl/Music/track.mp3", true); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if exec.args[0][2] != "-qsl" {
		t.Fatalf("expected -qsl flag, got %v", exec.args[0])
	}
}
