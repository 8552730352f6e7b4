package chunker

import (
	"context"
	"fmt"
	"time"

	ffprobe "gopkg.in/vansante/go-ffprobe.v2"
)

// probeFunc defines the function signature used to execute ffprobe.
type probeFunc func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error)

// Prober reads audio durations via ffprobe.
type Prober struct {
	probe probeFunc
}

// NewProber constructs a Prober. A non-empty binary overrides the ffprobe
// executable resolved from PATH.
func NewProber(binary string) *Prober {
	if binary != "" {
		ffprobe.SetFFProbeBinPath(binary)
	}
	return &Prober{probe: ffprobe.ProbeURL}
}

// WithProbe injects a custom probe function (primarily for tests).
func (p *Prober) WithProbe(fn probeFunc) *Prober {
	if fn != nil {
		p.probe = fn
	}
	return p
}

// Durations probes each path in order and returns the corresponding tracks.
func (p *Prober) Durations(ctx context.Context, paths []string) ([]Track, error) {
	tracks := make([]Track, 0, len(paths))
	for _, path := range paths {
		data, err := p.probe(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", path, err)
		}
		if data == nil || data.Format == nil {
			return nil, fmt.Errorf("probe %s: no format data", path)
		}
		tracks = append(tracks, Track{
			Path:     path,
			Duration: time.Duration(data.Format.DurationSeconds * float64(time.Second)),
		})
	}
	return tracks, nil
}
