package captions

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const (
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxTimedTextSize = 512 * 1024
)

// timedTextDoc mirrors the timedtext XML payload:
// <transcript><text start="3285.28" dur="4.88">...</text></transcript>
type timedTextDoc struct {
	XMLName xml.Name       `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// fetchTimedText downloads and parses a timedtext caption URL into items.
func fetchTimedText(ctx context.Context, client *http.Client, url string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextSize))
	if err != nil {
		return nil, err
	}

	var doc timedTextDoc
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	items := make([]Item, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, Item{
			Text:     line.Text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return items, nil
}
