// Package translate provides machine translation of refined scripts through
// the Google Gemini API. Translation failure is always recoverable: callers
// log it and continue with the untranslated text.
package translate

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Error reports a translation failure after all attempts are exhausted.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "translate " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Options bounds the paragraph translation pass.
type Options struct {
	MaxConcurrent int
	CallsPerMin   int
}

// Paragraphs translates a paragraph list, keeping input order. Calls are
// paced by a rate limiter and bounded by MaxConcurrent; a paragraph whose
// translation fails keeps its source text.
func Paragraphs(ctx context.Context, tr Translator, paragraphs []string, sourceLang, targetLang string, opts Options) []string {
	out := make([]string, len(paragraphs))
	copy(out, paragraphs)

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	perMin := opts.CallsPerMin
	if perMin < 1 {
		perMin = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMin)/60.0), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, para := range paragraphs {
		if strings.TrimSpace(para) == "" {
			continue
		}
		i, para := i, para
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			slog.Debug("translating paragraph", "paragraph", i+1, "total", len(paragraphs))

			translated, err := tr.Translate(gctx, para, sourceLang, targetLang)
			if err != nil {
				slog.Warn("paragraph translation failed, keeping source text",
					"paragraph", i+1, "err", err)
				return nil
			}
			out[i] = translated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("paragraph translation interrupted", "err", err)
	}
	return out
}
