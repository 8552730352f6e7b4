// Package chunker partitions ordered audio tracks into duration-bounded
// groups ("parts") for audiobook chaptering.
//
// The split is a count-based heuristic inherited from the legacy organizer:
// the number of parts comes from total duration over the maximum, but files
// are then divided evenly by count, not by duration. A part can exceed the
// maximum when track lengths are very uneven. Kept as-is for compatibility.
package chunker

import (
	"math"
	"time"
)

// Track is one audio file with its probed duration.
type Track struct {
	Path     string
	Duration time.Duration
}

// Plan partitions tracks into consecutive ordered groups. Concatenating the
// groups always reproduces the input exactly; no group is empty.
func Plan(tracks []Track, maxPart time.Duration) [][]Track {
	if len(tracks) == 0 {
		return nil
	}

	var total time.Duration
	for _, track := range tracks {
		total += track.Duration
	}
	if maxPart <= 0 || total <= maxPart {
		return [][]Track{tracks}
	}

	parts := int(math.Ceil(total.Seconds() / maxPart.Seconds()))
	chunkSize := int(math.Ceil(float64(len(tracks)) / float64(parts)))
	if chunkSize <= 0 {
		return [][]Track{tracks}
	}

	groups := make([][]Track, 0, parts)
	for start := 0; start < len(tracks); start += chunkSize {
		end := start + chunkSize
		if end > len(tracks) {
			end = len(tracks)
		}
		groups = append(groups, tracks[start:end])
	}
	return groups
}
