package media

import (
	"errors"
	"testing"

	"curator/internal/services"
)

func TestClassifyBySynonym(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"/downloads/TV Shows/Show.S01E01.mkv", KindTV},
		{"/downloads/television/Show.S01E01.mkv", KindTV},
		{"/downloads/tv/Show.S01E01", KindTV},
		{"/downloads/Movies/A Movie (2019)", KindMovie},
		{"/downloads/Music/Artist - Album", KindMusic},
		{"/downloads/Books/Some Book", KindAudiobook},
		{"/downloads/audiobooks/Some Book", KindAudiobook},
	}
	for _, tc := range cases {
		req, err := Classify(tc.path, "")
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", tc.path, err)
		}
		if req.Kind != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.path, req.Kind, tc.want)
		}
		if req.Forced {
			t.Fatalf("Classify(%q) marked forced without override", tc.path)
		}
	}
}

func TestClassifyUnknownDirectoryFails(t *testing.T) {
	_, err := Classify("/downloads/Software/some.iso", "")
	if err == nil {
		t.Fatal("expected classification error")
	}
	if !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected ErrClassification, got %v", err)
	}
}

func TestClassifyForcedKindWins(t *testing.T) {
	req, err := Classify("/downloads/Software/book-folder", KindAudiobook)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if req.Kind != KindAudiobook || !req.Forced {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Name != "book-folder" {
		t.Fatalf("unexpected name %q", req.Name)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"tv":         KindTV,
		"TV Shows":   KindTV,
		"movie":      KindMovie,
		"movies":     KindMovie,
		"music":      KindMusic,
		"book":       KindAudiobook,
		"audiobook":  KindAudiobook,
		"Audiobooks": KindAudiobook,
	}
	for input, want := range cases {
		got, ok := ParseKind(input)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = (%v, %v), want %s", input, got, ok, want)
		}
	}
	if _, ok := ParseKind("podcast"); ok {
		t.Fatal("expected podcast to be rejected")
	}
	if _, ok := ParseKind(""); ok {
		t.Fatal("expected empty string to be rejected")
	}
}
