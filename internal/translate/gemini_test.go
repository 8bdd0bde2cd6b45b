package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func geminiResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func testGemini(srv *httptest.Server, maxRetries int) *Gemini {
	g := NewGemini("test-key", maxRetries)
	g.baseURL = srv.URL
	g.backoff = 0
	g.httpClient = srv.Client()
	return g
}

func TestGeminiTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "from en to ko") {
			t.Errorf("prompt missing language pair: %q", prompt)
		}
		if !strings.Contains(prompt, "Hello world, this is a test.") {
			t.Errorf("prompt missing source text: %q", prompt)
		}
		fmt.Fprint(w, geminiResponse("  안녕하세요 세계, 테스트입니다.\n"))
	}))
	defer srv.Close()

	got, err := testGemini(srv, 1).Translate(context.Background(), "Hello world, this is a test.", "en", "ko")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "안녕하세요 세계, 테스트입니다." {
		t.Errorf("Translate = %q, want trimmed translation", got)
	}
}

func TestGeminiTranslate_ShortTextPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("short text must not hit the API")
	}))
	defer srv.Close()

	got, err := testGemini(srv, 1).Translate(context.Background(), "hi", "en", "ko")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hi" {
		t.Errorf("Translate = %q, want source text unchanged", got)
	}
}

func TestGeminiTranslate_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, geminiResponse("second try worked"))
	}))
	defer srv.Close()

	got, err := testGemini(srv, 2).Translate(context.Background(), "retry this sentence please", "en", "ko")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "second try worked" {
		t.Errorf("Translate = %q", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestGeminiTranslate_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testGemini(srv, 2).Translate(context.Background(), "this will never translate", "en", "ko")
	if err == nil {
		t.Fatal("expected an error after exhausted retries")
	}
	var terr *Error
	if !errors.As(err, &terr) {
		t.Errorf("error type = %T, want *translate.Error", err)
	}
}

func TestGeminiTranslate_NoAPIKey(t *testing.T) {
	g := NewGemini("", 1)
	_, err := g.Translate(context.Background(), "some text to translate", "en", "ko")
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *translate.Error", err)
	}
}

func TestGeminiTranslate_BlockedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	}))
	defer srv.Close()

	_, err := testGemini(srv, 1).Translate(context.Background(), "blocked content goes here", "en", "ko")
	if err == nil || !strings.Contains(err.Error(), "SAFETY") {
		t.Errorf("err = %v, want block reason surfaced", err)
	}
}

func TestGeminiTranslate_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := testGemini(srv, 3)
	g.backoff = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Translate(ctx, "cancelled before the retry fires", "en", "ko")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
