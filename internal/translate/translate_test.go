package translate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

// translatorFunc adapts a function to the Translator interface.
type translatorFunc func(ctx context.Context, text, sourceLang, targetLang string) (string, error)

func (f translatorFunc) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return f(ctx, text, sourceLang, targetLang)
}

func TestParagraphs_KeepsOrder(t *testing.T) {
	upper := translatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		return strings.ToUpper(text), nil
	})

	paragraphs := []string{"one", "two", "three", "four"}
	got := Paragraphs(context.Background(), upper, paragraphs, "en", "ko",
		Options{MaxConcurrent: 3, CallsPerMin: 6000})

	want := []string{"ONE", "TWO", "THREE", "FOUR"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParagraphs_FailureKeepsSourceText(t *testing.T) {
	flaky := translatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		if text == "two" {
			return "", &Error{Op: "generate", Err: errors.New("boom")}
		}
		return strings.ToUpper(text), nil
	})

	got := Paragraphs(context.Background(), flaky, []string{"one", "two", "three"}, "en", "ko",
		Options{MaxConcurrent: 1, CallsPerMin: 6000})

	want := []string{"ONE", "two", "THREE"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParagraphs_SkipsBlankParagraphs(t *testing.T) {
	var calls atomic.Int64
	counting := translatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		calls.Add(1)
		return text, nil
	})

	got := Paragraphs(context.Background(), counting, []string{"one", "   ", ""}, "en", "ko",
		Options{MaxConcurrent: 2, CallsPerMin: 6000})

	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if got[1] != "   " || got[2] != "" {
		t.Errorf("blank paragraphs must pass through unchanged: %q", got)
	}
}

func TestParagraphs_Empty(t *testing.T) {
	got := Paragraphs(context.Background(), nil, nil, "en", "ko", Options{})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &Error{Op: "generate", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Unwrap must expose the inner error")
	}
	if !strings.Contains(err.Error(), "generate") {
		t.Errorf("Error() = %q, want the op included", err.Error())
	}
}
