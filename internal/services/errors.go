package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks unusable configuration: missing API keys,
	// absent external tools, destination folders that do not exist, or a
	// media kind that is disabled.
	ErrConfiguration = errors.New("configuration error")
	// ErrClassification marks an input path whose media kind could not be
	// determined from its directory structure.
	ErrClassification = errors.New("classification error")
	// ErrNoMatch marks a tool run that produced neither added nor skipped
	// entries, or a post-filter that discarded every candidate.
	ErrNoMatch = errors.New("no match")
	// ErrExternalTool marks a child-process failure of one of the external
	// tools (renamer, tagger, chapterizer).
	ErrExternalTool = errors.New("external tool error")
	// ErrValidation marks bad input discovered before any tool ran, such as
	// an empty source directory.
	ErrValidation = errors.New("validation error")
	// ErrTransient marks network failures (metadata lookup, cover download,
	// notification delivery) that are eligible for a single retry.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status. Every failure is
// fatal; the codes only distinguish broad causes for scripting.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrClassification):
		return 2
	case errors.Is(err, ErrNoMatch), errors.Is(err, ErrValidation):
		return 3
	default:
		return 1
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
