package script

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Lang
	}{
		{"english", "Hello world", English},
		{"korean", "안녕하세요", Korean},
		{"japanese", "これはテストです", Japanese},
		{"chinese", "这是一个测试", Chinese},
		{"empty", "", English},
		{"whitespace only", "   \t\n", English},
		{"digits and symbols", "12345 !!! ???", English},
		{"korean with latin minority", "안녕하세요 세계 ab", Korean},
		{"latin majority over korean", "안녕 abcdefgh", English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_TieBreakOrder(t *testing.T) {
	// Two Hangul and two Latin characters tie; ko wins by enumeration order.
	if got := Detect("안녕ab"); got != Korean {
		t.Errorf("Detect(\"안녕ab\") = %q, want ko on tie", got)
	}
}

func TestDetect_LowWinnerDefaultsToEnglish(t *testing.T) {
	// One Hangul syllable among twenty periods is under the 5% floor.
	text := strings.Repeat(".", 20) + "한"
	if got := Detect(text); got != English {
		t.Errorf("Detect(%q) = %q, want en when winner is below 5%% of total", text, got)
	}
}

func TestDetect_Total(t *testing.T) {
	inputs := []string{"", "mixed 한국어 and English テキスト 混合", "\x00\xff", "🎵🎵🎵"}
	valid := map[Lang]bool{Korean: true, Japanese: true, Chinese: true, English: true}
	for _, in := range inputs {
		got := Detect(in)
		if !valid[got] {
			t.Errorf("Detect(%q) = %q, not a supported language code", in, got)
		}
	}
}
