package script

// Lang identifies the dominant script of a text.
type Lang string

// Supported language codes.
const (
	Korean   Lang = "ko"
	Japanese Lang = "ja"
	Chinese  Lang = "zh"
	English  Lang = "en"
)

// detectOrder fixes the tie-break order for equal counts.
var detectOrder = [...]Lang{Korean, Japanese, Chinese, English}

// Detect classifies the dominant language of text by counting characters in
// four fixed code-point ranges: Hangul syllables, hiragana/katakana, CJK
// unified ideographs, and ASCII letters. It is a best-effort heuristic, not a
// statistical detector. Mostly symbolic or empty text defaults to English:
// when the winning bucket covers less than 5% of all characters, the result
// is forced to en.
func Detect(text string) Lang {
	counts := make(map[Lang]int, len(detectOrder))
	total := 0
	for _, r := range text {
		total++
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			counts[Korean]++
		case r >= 0x3040 && r <= 0x30FE:
			counts[Japanese]++
		case r >= 0x4E00 && r <= 0x9FFE:
			counts[Chinese]++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			counts[English]++
		}
	}
	if total == 0 {
		return English
	}

	winner := detectOrder[0]
	for _, lang := range detectOrder[1:] {
		if counts[lang] > counts[winner] {
			winner = lang
		}
	}
	if float64(counts[winner]) < float64(total)*0.05 {
		return English
	}
	return winner
}
