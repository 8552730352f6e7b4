package parse

import (
	"regexp"
	"strings"
)

var (
	// renameAddedPattern matches the renamer's success lines:
	//   [COPY] Rename [/src/file.mkv] to [/dest/file.mkv]
	// The destination is captured with its extension stripped.
	renameAddedPattern = regexp.MustCompile(`\[([A-Z]+)\] Rename \[.+\] to \[(.+)\..+\]`)

	// renameSkippedPattern matches the renamer's duplicate lines:
	//   Skipped [/src/file.mkv] because [/dest/file.mkv] already exists
	// The original source is captured.
	renameSkippedPattern = regexp.MustCompile(`Skipped \[(.+)\] because \[.+\] already exists`)

	// tvEpisodePattern decomposes a renamed destination path into show,
	// season directory, and episode number:
	//   <root>/<show>/<season dir>/<name>.S<NN>E<NN><rest>
	tvEpisodePattern = regexp.MustCompile(`^.*/([^/]+)/([^/]+)/[^/]*[Ss]\d+[Ee](\d+)[^/]*$`)

	// moviePattern decomposes a renamed destination path into title and year:
	//   <root>/<title> (<year>)
	moviePattern = regexp.MustCompile(`([^/]+) \((\d{4})\)$`)

	// taggerBatchPattern matches the tagger's album import confirmations:
	//   Tagging:
	//       Artist - Album
	//   URL:
	//       https://musicbrainz.org/release/...
	// "To:" appears instead of "Tagging:" when the tagger corrects metadata.
	taggerBatchPattern = regexp.MustCompile(`(?:Tagging|To):\n\s+(.+)\nURL:\n\s+(.+)`)

	// taggerSinglePattern matches the tagger's singleton import confirmations:
	//   Tagging track: Artist - Title
	//   URL:
	//       https://musicbrainz.org/recording/...
	taggerSinglePattern = regexp.MustCompile(`Tagging track: (.+)\nURL:\n\s+(.+)`)

	// taggerSkipPattern matches the tagger's duplicate notices:
	//   /inbox/Artist - Album (12 items)
	//   Skipping.
	taggerSkipPattern = regexp.MustCompile(`(?m)^(.+) \(\d+ items\)\nSkipping\.$`)

	// chapterSuccessPattern matches the chapterizer's completion marker. The
	// misspelling is verbatim upstream output.
	chapterSuccessPattern = regexp.MustCompile(`Audiobook '(.+)\.(\w+)' created succsessfully!`)
)

// RenameOutcome extracts added destinations (extension stripped) and skipped
// sources from renamer output.
func RenameOutcome(text string) Outcome {
	var outcome Outcome
	for _, match := range renameAddedPattern.FindAllStringSubmatch(text, -1) {
		outcome.Added = append(outcome.Added, match[2])
	}
	for _, match := range renameSkippedPattern.FindAllStringSubmatch(text, -1) {
		outcome.Skipped = append(outcome.Skipped, match[1])
	}
	return outcome
}

// TVEpisodeTitle reconstructs a human-readable episode title from a renamed
// destination path, of the form "<show> (<season dir>, Episode <n>)" with the
// leading zero stripped from the episode number.
func TVEpisodeTitle(path string) (string, bool) {
	match := tvEpisodePattern.FindStringSubmatch(path)
	if match == nil {
		return "", false
	}
	episode := strings.TrimLeft(match[3], "0")
	if episode == "" {
		episode = "0"
	}
	return match[1] + " (" + match[2] + ", Episode " + episode + ")", true
}

// MovieTitle reconstructs a human-readable movie title from a renamed
// destination path, of the form "<title> (<year>)".
func MovieTitle(path string) (string, bool) {
	match := moviePattern.FindStringSubmatch(path)
	if match == nil {
		return "", false
	}
	return match[1] + " (" + match[2] + ")", true
}

// TaggerBatchOutcome extracts tagged album names and skipped containers from
// the tagger's batch import output.
func TaggerBatchOutcome(text string) Outcome {
	var outcome Outcome
	for _, match := range taggerBatchPattern.FindAllStringSubmatch(text, -1) {
		outcome.Added = append(outcome.Added, strings.TrimSpace(match[1]))
	}
	outcome.Skipped = taggerSkips(text)
	return outcome
}

// TaggerSingleOutcome extracts the tagged track name and skipped containers
// from the tagger's single-track import output.
func TaggerSingleOutcome(text string) Outcome {
	var outcome Outcome
	for _, match := range taggerSinglePattern.FindAllStringSubmatch(text, -1) {
		outcome.Added = append(outcome.Added, strings.TrimSpace(match[1]))
	}
	outcome.Skipped = taggerSkips(text)
	return outcome
}

func taggerSkips(text string) []string {
	var skipped []string
	for _, match := range taggerSkipPattern.FindAllStringSubmatch(text, -1) {
		skipped = append(skipped, strings.TrimSpace(match[1]))
	}
	return skipped
}

// ChapterSuccess extracts the produced filename from the chapterizer's
// completion marker. The second return is the container extension.
func ChapterSuccess(text string) (string, string, bool) {
	match := chapterSuccessPattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}
