// Package worker orchestrates one document-generation run: fetch captions,
// refine, detect language, optionally translate, and emit documents.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hjjung-katech/youtube-transcriber/internal/document"
	"github.com/hjjung-katech/youtube-transcriber/internal/script"
	"github.com/hjjung-katech/youtube-transcriber/internal/transcript"
	"github.com/hjjung-katech/youtube-transcriber/internal/translate"
)

// minScriptRunes is the trimmed caption length below which a video is treated
// as having no usable script.
const minScriptRunes = 30

// Source supplies caption tracks. *transcript.Client is the production
// implementation.
type Source interface {
	Fetch(ctx context.Context, videoID string) (transcript.Track, string, bool, error)
}

// Options configures a document-generation run.
type Options struct {
	Video               string // URL or bare video ID
	OutputDir           string
	TargetLang          script.Lang
	Translate           bool
	TranslateParagraphs bool
	Translator          translate.Translator // nil when translation is disabled
	MaxConcurrent       int
	RateLimitPerMin     int
	Source              Source // defaults to transcript.NewClient()
}

// Result reports what a run produced.
type Result struct {
	VideoID    string
	Title      string
	Entries    int
	Language   script.Lang
	Translated bool
	Files      []string
}

// Run generates all transcript documents for one video.
func Run(ctx context.Context, opts Options) (*Result, error) {
	videoID := transcript.VideoID(opts.Video)
	slog.Info("processing video", "id", videoID)

	source := opts.Source
	if source == nil {
		source = transcript.NewClient()
	}

	track, title, ok, err := source.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	if !ok {
		slog.Warn("no captions available, generating placeholder documents", "id", videoID)
		track = nil
	} else {
		slog.Info("captions fetched", "id", videoID, "entries", len(track))
		if !track.Meaningful() {
			slog.Warn("captions carry little meaningful content", "id", videoID)
		}
	}

	fullText := track.Text()
	insufficient := utf8.RuneCountInString(strings.TrimSpace(fullText)) < minScriptRunes
	if insufficient {
		fullText = document.MsgInsufficientScript
	}

	refined := document.MsgNoCaptions
	if strings.TrimSpace(fullText) != "" {
		refined = script.Refine(fullText)
	}

	lang := script.Detect(refined)
	slog.Info("language detected", "lang", lang)

	canTranslate := opts.Translator != nil && !insufficient &&
		lang != opts.TargetLang &&
		utf8.RuneCountInString(strings.TrimSpace(refined)) > minScriptRunes

	translated := ""
	if opts.Translate && canTranslate {
		slog.Info("translating full script", "source", lang, "target", opts.TargetLang)
		out, err := opts.Translator.Translate(ctx, refined, string(lang), string(opts.TargetLang))
		if err != nil {
			slog.Warn("translation failed, continuing with untranslated script", "err", err)
		} else {
			translated = out
		}
	}

	var paragraphs []string
	if !insufficient {
		paragraphs = script.Segment(refined)
	}
	var translatedParagraphs []string
	if opts.TranslateParagraphs && canTranslate && len(paragraphs) > 0 {
		slog.Info("translating paragraphs", "count", len(paragraphs))
		translatedParagraphs = translate.Paragraphs(ctx, opts.Translator, paragraphs,
			string(lang), string(opts.TargetLang), translate.Options{
				MaxConcurrent: opts.MaxConcurrent,
				CallsPerMin:   opts.RateLimitPerMin,
			})
	}

	emitter := document.NewEmitter(opts.OutputDir)

	files, err := emitter.WriteTimestamped(title, track, insufficient)
	if err != nil {
		return nil, fmt.Errorf("write timestamped document: %w", err)
	}

	scriptFiles, err := emitter.WriteScript(title, document.Script{
		Refined:              refined,
		Translated:           translated,
		TargetLang:           string(opts.TargetLang),
		Paragraphs:           paragraphs,
		TranslatedParagraphs: translatedParagraphs,
		Insufficient:         insufficient,
	})
	if err != nil {
		return nil, fmt.Errorf("write script document: %w", err)
	}
	files = append(files, scriptFiles...)

	for _, f := range files {
		slog.Info("document saved", "path", f)
	}

	return &Result{
		VideoID:    videoID,
		Title:      title,
		Entries:    len(track),
		Language:   lang,
		Translated: translated != "",
		Files:      files,
	}, nil
}
