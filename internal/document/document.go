// Package document renders transcript documents. Each video produces a
// timestamped caption view and a refined full-script view, both written in
// markdown and plain-text forms.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hjjung-katech/youtube-transcriber/internal/config"
	"github.com/hjjung-katech/youtube-transcriber/internal/transcript"
)

// Placeholder messages for videos without usable captions.
const (
	MsgNoCaptions         = "자막이 없습니다."
	MsgInsufficient       = "※ 이 동영상에는 충분한 자막이 없습니다."
	MsgInsufficientScript = "※ 이 동영상에는 충분한 자막이 없습니다. 자동 생성된 자막이 제한적이거나 없는 경우입니다."
	MsgNoParagraphs       = "자막이 없거나 문단 분리가 불가능합니다."
)

// Section headings shared by both document forms.
const (
	timestampSection  = "타임스탬프 포함 자막"
	scriptSection     = "전체 스크립트"
	translatedSection = "번역된 전체 스크립트"
	paragraphSection  = "문단별 정리 스크립트"
)

// Script carries everything the full-script view renders.
type Script struct {
	Refined              string
	Translated           string // empty when translation was skipped or failed
	TargetLang           string
	Paragraphs           []string
	TranslatedParagraphs []string // empty when paragraph translation was skipped
	Insufficient         bool
}

// Emitter writes transcript documents into an output directory.
type Emitter struct {
	OutputDir string
	now       func() time.Time
}

// NewEmitter returns an Emitter rooted at outputDir.
func NewEmitter(outputDir string) *Emitter {
	return &Emitter{OutputDir: outputDir, now: time.Now}
}

func (e *Emitter) generatedAt() string {
	return e.now().Format("2006-01-02 15:04:05")
}

// WriteTimestamped renders the timestamped caption view and returns the
// paths of the markdown and plain-text files.
func (e *Emitter) WriteTimestamped(title string, track transcript.Track, insufficient bool) ([]string, error) {
	var md, txt strings.Builder

	fmt.Fprintf(&md, "# %s\n\n생성 시간: %s\n\n", title, e.generatedAt())
	fmt.Fprintf(&txt, "%s\n\n생성 시간: %s\n\n", title, e.generatedAt())

	if insufficient {
		fmt.Fprintf(&md, "**%s**\n\n", MsgInsufficient)
		fmt.Fprintf(&txt, "%s\n\n", MsgInsufficient)
	}

	fmt.Fprintf(&md, "## %s\n\n", timestampSection)
	fmt.Fprintf(&txt, "==== %s ====\n\n", timestampSection)

	if len(track) == 0 {
		md.WriteString(MsgNoCaptions + "\n")
		txt.WriteString(MsgNoCaptions + "\n")
	} else {
		for _, entry := range track {
			line := fmt.Sprintf("[%s] %s\n", transcript.FormatTime(entry.Start), entry.Text)
			md.WriteString(line)
			txt.WriteString(line)
		}
	}

	return e.writePair(title, "타임스탬프", md.String(), txt.String())
}

// WriteScript renders the refined full-script view and returns the paths of
// the markdown and plain-text files.
func (e *Emitter) WriteScript(title string, script Script) ([]string, error) {
	var md, txt strings.Builder

	fmt.Fprintf(&md, "# %s\n\n생성 시간: %s\n\n", title, e.generatedAt())
	fmt.Fprintf(&txt, "%s\n\n생성 시간: %s\n\n", title, e.generatedAt())

	if script.Insufficient {
		fmt.Fprintf(&md, "**%s**\n\n", MsgInsufficient)
		fmt.Fprintf(&txt, "%s\n\n", MsgInsufficient)
	}

	fmt.Fprintf(&md, "## %s\n\n%s\n", scriptSection, script.Refined)
	fmt.Fprintf(&txt, "==== %s ====\n\n%s\n", scriptSection, script.Refined)

	if script.Translated != "" {
		heading := fmt.Sprintf("%s (%s)", translatedSection, config.LangName(script.TargetLang))
		fmt.Fprintf(&md, "\n## %s\n\n%s\n", heading, script.Translated)
		fmt.Fprintf(&txt, "\n==== %s ====\n\n%s\n", heading, script.Translated)
	}

	fmt.Fprintf(&md, "\n## %s\n\n", paragraphSection)
	fmt.Fprintf(&txt, "\n==== %s ====\n\n", paragraphSection)
	e.writeParagraphs(&md, &txt, script)

	return e.writePair(title, "전체스크립트", md.String(), txt.String())
}

func (e *Emitter) writeParagraphs(md, txt *strings.Builder, script Script) {
	if len(script.Paragraphs) == 0 {
		md.WriteString(MsgNoParagraphs + "\n")
		txt.WriteString(MsgNoParagraphs + "\n")
		return
	}

	for i, paragraph := range script.Paragraphs {
		fmt.Fprintf(md, "%s\n", paragraph)
		fmt.Fprintf(txt, "%s\n", paragraph)

		if i < len(script.TranslatedParagraphs) && script.TranslatedParagraphs[i] != paragraph {
			fmt.Fprintf(md, "\n*[번역] %s*\n", script.TranslatedParagraphs[i])
			fmt.Fprintf(txt, "\n[번역] %s\n", script.TranslatedParagraphs[i])
		}

		if i < len(script.Paragraphs)-1 {
			md.WriteString("\n---\n\n")
			txt.WriteString("\n---\n\n")
		}
	}
}

// writePair saves the markdown and plain-text forms of one view and returns
// both paths.
func (e *Emitter) writePair(title, suffix, md, txt string) ([]string, error) {
	base := cleanFilename(title) + "_" + suffix

	mdPath := filepath.Join(e.OutputDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", mdPath, err)
	}

	txtPath := filepath.Join(e.OutputDir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(txt), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", txtPath, err)
	}

	return []string{mdPath, txtPath}, nil
}

var invalidFilenameChars = strings.NewReplacer(
	`\`, "", "/", "", "*", "", "?", "", ":", "", `"`, "", "<", "", ">", "", "|", "",
)

// cleanFilename strips characters that are invalid in file names.
func cleanFilename(name string) string {
	return invalidFilenameChars.Replace(name)
}
