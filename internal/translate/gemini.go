package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	geminiAPIBase  = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiModel    = "gemini-1.5-pro"
	requestTimeout = 5 * time.Minute

	// minTranslatableRunes: anything shorter passes through untranslated.
	minTranslatableRunes = 5
)

// Gemini translates text through the Gemini generateContent API.
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

// NewGemini builds a Gemini translator. The API key comes from configuration;
// core packages never read it from ambient process state.
func NewGemini(apiKey string, maxRetries int) *Gemini {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Gemini{
		apiKey:     apiKey,
		model:      geminiModel,
		baseURL:    geminiAPIBase,
		maxRetries: maxRetries,
		backoff:    5 * time.Second,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Translate translates text from sourceLang to targetLang, retrying once per
// configured attempt with a fixed backoff. Exhausted retries surface as
// *Error; callers treat that as skip-and-continue.
func (g *Gemini) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if g.apiKey == "" {
		return "", &Error{Op: "configure", Err: errors.New("API key not set")}
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTranslatableRunes {
		return text, nil
	}

	prompt := buildPrompt(text, sourceLang, targetLang)

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("translation failed, retrying",
				"attempt", attempt+1, "backoff", g.backoff, "err", lastErr)

			timer := time.NewTimer(g.backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", &Error{Op: "wait", Err: ctx.Err()}
			case <-timer.C:
			}
		}

		translated, err := g.generate(ctx, prompt)
		if err == nil {
			return strings.TrimSpace(translated), nil
		}
		lastErr = err
	}

	return "", &Error{Op: "generate", Err: lastErr}
}

func buildPrompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(`Please translate the following text from %s to %s.
Maintain the original meaning, tone, and context as closely as possible.
Ensure the translation is natural and fluent in %s.

Text to translate:
%s

Translation:
`, sourceLang, targetLang, targetLang, text)
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.2,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 8192,
		},
		SafetySettings: []geminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		if geminiResp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", geminiResp.PromptFeedback.BlockReason)
		}
		return "", errors.New("empty response")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
