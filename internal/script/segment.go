package script

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSegmentRunes is the trimmed length below which text is too short to
// paragraph.
const minSegmentRunes = 30

// maxParagraphSentences caps how many sentences accumulate before a
// paragraph is closed.
const maxParagraphSentences = 5

// boundaryKeywords are Korean discourse connectives that signal a topic
// boundary: and, therefore, however, so, in conclusion.
var boundaryKeywords = []string{"그리고", "따라서", "그러나", "그래서", "결론적으로"}

// Segment splits refined script text into paragraphs of one to five
// sentences. This is a greedy single forward pass: a paragraph closes as soon
// as it holds five sentences or a sentence contains a discourse connective
// keyword, never by global optimization. Text whose trimmed length is under
// 30 runes yields no paragraphs.
func Segment(text string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSegmentRunes {
		return nil
	}

	text = strings.ReplaceAll(text, noiseMarker, "")

	var paragraphs []string
	var current []string
	for _, sentence := range splitSentences(text) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		current = append(current, sentence)
		if len(current) >= maxParagraphSentences || hasBoundaryKeyword(sentence) {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return paragraphs
}

func hasBoundaryKeyword(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range boundaryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitSentences breaks text after any of '.', '!', '?' followed by
// whitespace, keeping the terminator attached to the preceding sentence and
// consuming the whitespace run.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if isTerminator(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, b.String())
			b.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if b.Len() > 0 {
		sentences = append(sentences, b.String())
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
