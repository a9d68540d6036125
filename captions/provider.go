// Package captions retrieves and normalizes YouTube caption tracks.
package captions

import (
	"context"
	"fmt"
	"strings"
)

// Item is one timed caption line as returned by a provider. Start and
// Duration are carried for callers that want them; normalization only uses
// Text.
type Item struct {
	Text     string
	Start    float64
	Duration float64
}

// Provider fetches the caption track of one video in one language. The
// empty language tag means "any available language". Implementations return
// an error for transport failures and an empty slice when the video simply
// has no usable track in that language.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, videoID, lang string) ([]Item, error)
}

// NotAvailableError reports that every configured language tag was tried
// without producing a non-empty track. LastErr is the most recently
// recorded attempt failure, kept as diagnostic context.
type NotAvailableError struct {
	VideoID string
	LastErr error
}

func (e *NotAvailableError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("no caption track available for %s: %v", e.VideoID, e.LastErr)
	}
	return fmt.Sprintf("no caption track available for %s", e.VideoID)
}

func (e *NotAvailableError) Unwrap() error {
	return e.LastErr
}

// Transcript flattens a caption track into a single decoded string: each
// item is trimmed, empty items are dropped, and the rest are joined with a
// single space.
func Transcript(items []Item) string {
	var sb strings.Builder
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return Decode(sb.String())
}
