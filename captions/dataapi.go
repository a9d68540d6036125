package captions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// DataAPIProvider discovers caption tracks through the YouTube Data API.
// Track metadata includes whether a track is manually authored, so manual
// tracks win over auto-generated ones in the same language. The track body
// itself still comes from the public timedtext endpoint: captions.download
// requires OAuth consent from the video owner, which an API key cannot
// grant.
type DataAPIProvider struct {
	service *youtube.Service
	client  *http.Client
}

func NewDataAPIProvider(ctx context.Context, apiKey string, client *http.Client) (*DataAPIProvider, error) {
	if client == nil {
		client = http.DefaultClient
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &DataAPIProvider{service: service, client: client}, nil
}

func (p *DataAPIProvider) Name() string { return "data-api" }

func (p *DataAPIProvider) Fetch(ctx context.Context, videoID, lang string) ([]Item, error) {
	resp, err := p.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list captions: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	track, ok := pickAPITrack(resp.Items, lang)
	if !ok {
		return nil, nil
	}

	return fetchTimedText(ctx, p.client, timedTextURL(videoID, track))
}

func isASR(c *youtube.Caption) bool {
	return c.Snippet != nil && strings.EqualFold(c.Snippet.TrackKind, "asr")
}

func trackLanguage(c *youtube.Caption) string {
	if c.Snippet == nil {
		return ""
	}
	return c.Snippet.Language
}

// pickAPITrack mirrors pickTrack for Data API metadata: requested language
// with manual preferred over asr, or any-language with the same ordering.
func pickAPITrack(items []*youtube.Caption, lang string) (*youtube.Caption, bool) {
	if lang != "" {
		for _, c := range items {
			if trackLanguage(c) == lang && !isASR(c) {
				return c, true
			}
		}
		for _, c := range items {
			if trackLanguage(c) == lang {
				return c, true
			}
		}
		return nil, false
	}

	for _, c := range items {
		if strings.HasPrefix(trackLanguage(c), "en") && !isASR(c) {
			return c, true
		}
	}
	for _, c := range items {
		if !isASR(c) {
			return c, true
		}
	}
	return items[0], true
}

func timedTextURL(videoID string, track *youtube.Caption) string {
	v := url.Values{}
	v.Set("v", videoID)
	v.Set("lang", trackLanguage(track))
	if isASR(track) {
		v.Set("kind", "asr")
	}
	return "https://www.youtube.com/api/timedtext?" + v.Encode()
}
