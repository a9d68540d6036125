package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	watchPageURL     = "https://www.youtube.com/watch?v=%s"
	maxWatchPageSize = 4 * 1024 * 1024
	captionsNeedle   = `"captions":`
)

// ScrapeProvider pulls caption metadata out of the public watch page and
// fetches the referenced timedtext track. No credential required; coverage
// is broad but the page shape is not a stable contract.
type ScrapeProvider struct {
	client *http.Client
}

func NewScrapeProvider(client *http.Client) *ScrapeProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &ScrapeProvider{client: client}
}

func (p *ScrapeProvider) Name() string { return "scrape" }

// captionTrack is one entry of playerCaptionsTracklistRenderer.captionTracks
// in the watch page's embedded player JSON. Kind is "asr" for auto-generated
// tracks.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (p *ScrapeProvider) Fetch(ctx context.Context, videoID, lang string) ([]Item, error) {
	page, err := p.loadWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks, err := parseCaptionTracks(page, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, nil
	}

	track, ok := pickTrack(tracks, lang)
	if !ok {
		return nil, nil
	}

	return fetchTimedText(ctx, p.client, track.BaseURL)
}

func (p *ScrapeProvider) loadWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(watchPageURL, videoID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch watch page: %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxWatchPageSize))
}

// parseCaptionTracks locates the captions blob in the watch page. A
// json.Decoder reads just the object after the needle, ignoring the rest of
// the page that follows it.
func parseCaptionTracks(page []byte, videoID string) ([]captionTrack, error) {
	i := bytes.Index(page, []byte(captionsNeedle))
	if i < 0 {
		if bytes.Contains(page, []byte(`class="g-recaptcha"`)) {
			return nil, errors.New("rate limited by youtube")
		}
		if !bytes.Contains(page, []byte("playabilityStatus")) {
			return nil, fmt.Errorf("video %q not found", videoID)
		}
		// Page exists but carries no captions section.
		return nil, nil
	}

	var data struct {
		Renderer *struct {
			Tracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}

	dec := json.NewDecoder(bytes.NewReader(page[i+len(captionsNeedle):]))
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parse captions blob: %w", err)
	}

	if data.Renderer == nil {
		return nil, nil
	}
	return data.Renderer.Tracks, nil
}

// pickTrack selects the track for the requested language, preferring
// manually-authored tracks over auto-generated ("asr") ones. The empty tag
// accepts any language, still with the manual-first preference and a bias
// toward English.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, bool) {
	if lang != "" {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
		return captionTrack{}, false
	}

	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t, true
		}
	}
	return tracks[0], true
}
