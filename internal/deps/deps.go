package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"curator/internal/config"
)

// Requirement defines an external tool the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the configured external tools in check order.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "Renamer", Command: cfg.Tools.Renamer, Description: "Renames TV and movie files, extracts archives"},
		{Name: "Tagger", Command: cfg.Tools.Tagger, Description: "Tags and imports music"},
		{Name: "Chapterizer", Command: cfg.Tools.Chapterizer, Description: "Builds chaptered audiobook containers", Optional: true},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Reads audio durations for chapter planning", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckFFmpegForChapterizer resolves the ffmpeg binary the chapterizer will
// run. m4b-tool shells out to ffmpeg and prefers one installed next to its
// own wrapper script; a sidecar beats whatever PATH resolves.
func CheckFFmpegForChapterizer(chapterizerCommand string) Status {
	status := Status{
		Name:        "FFmpeg",
		Description: "Used by the chapterizer for merging",
		Optional:    true,
	}

	if sidecar, ok := sidecarFFmpeg(chapterizerCommand); ok {
		status.Command = sidecar
		status.Available = true
		return status
	}
	if resolved, err := exec.LookPath(ffmpegBinary()); err == nil {
		status.Command = resolved
		status.Available = true
		return status
	}

	status.Command = ffmpegBinary()
	status.Detail = fmt.Sprintf("binary %q not found", status.Command)
	return status
}

// sidecarFFmpeg looks for an executable ffmpeg in the chapterizer's own
// directory.
func sidecarFFmpeg(chapterizerCommand string) (string, bool) {
	tool := strings.TrimSpace(chapterizerCommand)
	if tool == "" {
		return "", false
	}
	resolved, err := exec.LookPath(tool)
	if err != nil {
		return "", false
	}
	candidate := filepath.Join(filepath.Dir(resolved), ffmpegBinary())
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return "", false
	}
	return candidate, true
}

func ffmpegBinary() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}
