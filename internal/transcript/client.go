package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultWatchBase = "https://www.youtube.com"
	fetchTimeout     = 30 * time.Second
)

// languagePriority orders caption track selection.
var languagePriority = []string{"ko", "en", "ja"}

var titleRe = regexp.MustCompile(`<title>(.+?) - YouTube</title>`)

// Client fetches caption tracks from YouTube.
type Client struct {
	watchBase  string
	httpClient *http.Client
}

// NewClient returns a Client with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		watchBase:  defaultWatchBase,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// captionList mirrors the caption metadata embedded in the watch page.
type captionList struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

// Fetch retrieves the caption track and title for a video. ok reports whether
// captions were found; false with a nil error is the normal no-captions
// outcome, not a failure.
func (c *Client) Fetch(ctx context.Context, videoID string) (track Track, title string, ok bool, err error) {
	page, err := c.get(ctx, c.watchBase+"/watch?v="+videoID)
	if err != nil {
		return nil, "", false, fmt.Errorf("fetch watch page: %w", err)
	}

	title = "YouTube Video " + videoID
	if m := titleRe.FindSubmatch(page); len(m) > 1 {
		title = html.UnescapeString(string(m[1]))
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		slog.Debug("no caption metadata on watch page", "video", videoID, "err", err)
		return nil, title, false, nil
	}

	chosen := chooseTrack(tracks)
	slog.Debug("caption track selected", "video", videoID,
		"lang", chosen.LanguageCode, "kind", chosen.Kind)

	body, err := c.get(ctx, chosen.BaseURL)
	if err != nil {
		return nil, title, false, fmt.Errorf("fetch timedtext: %w", err)
	}
	track, err = parseTimedText(body)
	if err != nil {
		return nil, title, false, fmt.Errorf("parse timedtext: %w", err)
	}
	return track, title, len(track) > 0, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = randomHeaders()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseCaptionTracks extracts the caption track list embedded as JSON in the
// watch page HTML.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	_, after, found := strings.Cut(string(page), `"captions":`)
	if !found {
		return nil, fmt.Errorf("captions metadata missing")
	}
	end := strings.Index(after, `,"videoDetails`)
	if end < 0 {
		return nil, fmt.Errorf("captions metadata truncated")
	}

	var list captionList
	if err := json.Unmarshal([]byte(after[:end]), &list); err != nil {
		return nil, fmt.Errorf("decode captions metadata: %w", err)
	}
	tracks := list.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks listed")
	}
	return tracks, nil
}

// chooseTrack picks a caption track by language priority, preferring
// auto-generated tracks over manually created ones, then falls back to the
// first listed track. Must be called with a non-empty list.
func chooseTrack(tracks []captionTrack) captionTrack {
	for _, generated := range []bool{true, false} {
		for _, lang := range languagePriority {
			for _, t := range tracks {
				if t.LanguageCode == lang && (t.Kind == "asr") == generated {
					return t
				}
			}
		}
	}
	return tracks[0]
}

// timedText mirrors YouTube's legacy timedtext XML.
type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText decodes timedtext XML into a Track. Caption bodies arrive
// double-escaped, so entities are unescaped once more after XML decoding.
func parseTimedText(body []byte) (Track, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	track := make(Track, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		track = append(track, Entry{Start: t.Start, Duration: t.Dur, Text: text})
	}
	return track, nil
}
