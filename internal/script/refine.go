// Package script implements the caption refinement core: noise removal and
// sentence deduplication, paragraph segmentation, and character-histogram
// language detection. All functions are pure and safe for concurrent use.
package script

import (
	"regexp"
	"strings"
)

// noiseMarker is the bracketed annotation YouTube's automatic captioning
// inserts for non-speech audio.
const noiseMarker = "[음악]"

var (
	periodRun = regexp.MustCompile(`\.+`)
	spaceRun  = regexp.MustCompile(` {2,}`)
)

// Refine cleans concatenated caption text into a readable script. The noise
// marker is stripped, exact duplicate sentences are dropped (first occurrence
// wins), and the runs of periods and spaces left behind by the split are
// collapsed.
//
// Sentences are split on the literal ". " delimiter. Abbreviations and
// decimal numbers are not handled; deduplication depends on this exact
// granularity, so do not swap in a real sentence tokenizer.
func Refine(raw string) string {
	text := strings.ReplaceAll(raw, noiseMarker, "")

	seen := make(map[string]struct{})
	var unique []string
	for _, sentence := range strings.Split(text, ". ") {
		if sentence == "" {
			continue
		}
		if _, ok := seen[sentence]; ok {
			continue
		}
		seen[sentence] = struct{}{}
		unique = append(unique, sentence)
	}

	refined := strings.Join(unique, ". ")
	refined = periodRun.ReplaceAllString(refined, ".")
	refined = spaceRun.ReplaceAllString(refined, " ")
	return strings.TrimSpace(refined)
}
