package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"curator/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewCreatesLogFileDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "curator.log")
	logger, err := New(Options{Level: "debug", Format: "json", LogFile: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-1")
	ctx = services.WithKind(ctx, "tv")

	fields := ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCorrelationID || fields[1].Key != FieldKind {
		t.Fatalf("unexpected field keys: %v", fields)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	if logger := WithContext(context.Background(), nil); logger == nil {
		t.Fatal("expected fallback logger")
	}
}
