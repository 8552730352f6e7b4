package chunker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	ffprobe "gopkg.in/vansante/go-ffprobe.v2"
)

func tracks(durations ...time.Duration) []Track {
	result := make([]Track, len(durations))
	for i, d := range durations {
		result[i] = Track{Path: fmt.Sprintf("f%d.mp3", i+1), Duration: d}
	}
	return result
}

func flatten(groups [][]Track) []Track {
	var all []Track
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}

func TestPlanSingleGroupWhenUnderMax(t *testing.T) {
	input := tracks(10*time.Minute, 10*time.Minute, 5*time.Minute)
	groups := Plan(input, time.Hour)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if len(groups[0]) != len(input) {
		t.Fatalf("group = %v, want all %d tracks", groups[0], len(input))
	}
	for i, track := range groups[0] {
		if track.Path != input[i].Path {
			t.Fatalf("order changed at %d: %v", i, groups[0])
		}
	}
}

func TestPlanSplitsIntoThreePairs(t *testing.T) {
	// Six files at 700s each: total 4200s over an 1800s max forces
	// ceil(4200/1800)=3 parts of ceil(6/3)=2 files.
	input := tracks(700*time.Second, 700*time.Second, 700*time.Second,
		700*time.Second, 700*time.Second, 700*time.Second)
	groups := Plan(input, 1800*time.Second)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for i, group := range groups {
		if len(group) != 2 {
			t.Fatalf("group %d has %d tracks, want 2", i, len(group))
		}
	}
	if groups[0][0].Path != "f1.mp3" || groups[2][1].Path != "f6.mp3" {
		t.Fatalf("unexpected boundaries: %v", groups)
	}
}

func TestPlanConcatenationReproducesInput(t *testing.T) {
	input := tracks(100*time.Second, 900*time.Second, 30*time.Second,
		1200*time.Second, 60*time.Second, 500*time.Second, 45*time.Second)
	groups := Plan(input, 600*time.Second)
	all := flatten(groups)
	if len(all) != len(input) {
		t.Fatalf("flattened %d tracks, want %d", len(all), len(input))
	}
	for i := range input {
		if all[i].Path != input[i].Path {
			t.Fatalf("order changed at %d", i)
		}
	}
	for i, group := range groups {
		if len(group) == 0 {
			t.Fatalf("group %d is empty", i)
		}
	}
}

func TestPlanUnevenTail(t *testing.T) {
	// Five files at 700s: ceil(3500/1800)=2 parts of ceil(5/2)=3 files,
	// leaving a short tail group.
	input := tracks(700*time.Second, 700*time.Second, 700*time.Second,
		700*time.Second, 700*time.Second)
	groups := Plan(input, 1800*time.Second)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0]) != 3 || len(groups[1]) != 2 {
		t.Fatalf("unexpected group sizes %d/%d", len(groups[0]), len(groups[1]))
	}
}

func TestPlanEmptyInput(t *testing.T) {
	if groups := Plan(nil, time.Hour); groups != nil {
		t.Fatalf("expected nil plan, got %v", groups)
	}
}

func TestDurationsProbesEachFile(t *testing.T) {
	prober := NewProber("").WithProbe(func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error) {
		return &ffprobe.ProbeData{Format: &ffprobe.Format{DurationSeconds: 42.5}}, nil
	})
	tracks, err := prober.Durations(context.Background(), []string{"a.mp3", "b.mp3"})
	if err != nil {
		t.Fatalf("Durations returned error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	want := time.Duration(42.5 * float64(time.Second))
	if tracks[0].Duration != want {
		t.Fatalf("duration = %v, want %v", tracks[0].Duration, want)
	}
}

func TestDurationsPropagatesProbeError(t *testing.T) {
	boom := errors.New("corrupt header")
	prober := NewProber("").WithProbe(func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error) {
		return nil, boom
	})
	if _, err := prober.Durations(context.Background(), []string{"a.mp3"}); !errors.Is(err, boom) {
		t.Fatalf("expected probe error, got %v", err)
	}
}
