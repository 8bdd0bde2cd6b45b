// Package transcript fetches caption tracks from YouTube's public watch
// pages and timedtext endpoints.
package transcript

import (
	"fmt"
	"strings"
	"unicode"
)

// minMeaningfulRunes is the alphanumeric content floor below which a track is
// reported as carrying too little to be worth refining.
const minMeaningfulRunes = 20

// Entry is a single timed caption fragment.
type Entry struct {
	Start    float64 // offset from video start, seconds
	Duration float64
	Text     string
}

// Track is an ordered caption sequence. An empty track is a valid state, not
// an error: videos without captions still produce placeholder documents.
type Track []Entry

// Text returns all caption texts joined with single spaces.
func (t Track) Text() string {
	parts := make([]string, 0, len(t))
	for _, e := range t {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}

// Meaningful reports whether the track carries enough alphanumeric content
// to be worth refining. Punctuation and whitespace do not count.
func (t Track) Meaningful() bool {
	count := 0
	for _, e := range t {
		for _, r := range e.Text {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				count++
			}
		}
	}
	return count >= minMeaningfulRunes
}

// FormatTime renders a second offset as HH:MM:SS.
func FormatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// VideoID extracts the video ID from a YouTube URL. Bare IDs pass through
// unchanged.
func VideoID(urlOrID string) string {
	if strings.Contains(urlOrID, "youtu.be") {
		id := urlOrID[strings.LastIndex(urlOrID, "/")+1:]
		if i := strings.Index(id, "?"); i >= 0 {
			id = id[:i]
		}
		return id
	}
	if strings.Contains(urlOrID, "youtube.com") {
		if _, after, ok := strings.Cut(urlOrID, "v="); ok {
			if i := strings.Index(after, "&"); i >= 0 {
				return after[:i]
			}
			return after
		}
	}
	return urlOrID
}
