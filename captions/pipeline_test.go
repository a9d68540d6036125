package captions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

var defaultLanguages = []string{"en", "en-US", "en-GB", ""}

// stubProvider returns canned results per language and records the order of
// attempts.
type stubProvider struct {
	results  map[string][]Item
	errs     map[string]error
	hangOn   map[string]bool
	attempts []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Fetch(ctx context.Context, videoID, lang string) ([]Item, error) {
	s.attempts = append(s.attempts, lang)
	if s.hangOn[lang] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err, ok := s.errs[lang]; ok {
		return nil, err
	}
	return s.results[lang], nil
}

func TestFetchFallsBackAcrossLanguages(t *testing.T) {
	provider := &stubProvider{
		errs: map[string]error{
			"en":    errors.New("boom"),
			"en-US": errors.New("boom"),
			"en-GB": errors.New("boom"),
		},
		results: map[string][]Item{
			"": {{Text: "Hi "}, {Text: " there"}},
		},
	}

	p := NewPipeline(provider, defaultLanguages, time.Second, nil)
	items, err := p.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got := Transcript(items); got != "Hi there" {
		t.Errorf("Transcript = %q, want %q", got, "Hi there")
	}

	if len(provider.attempts) != 4 {
		t.Fatalf("expected 4 attempts, got %d (%v)", len(provider.attempts), provider.attempts)
	}
	for i, want := range defaultLanguages {
		if provider.attempts[i] != want {
			t.Errorf("attempt[%d] = %q, want %q", i, provider.attempts[i], want)
		}
	}
}

func TestFetchStopsOnFirstNonEmptyResult(t *testing.T) {
	provider := &stubProvider{
		results: map[string][]Item{
			"en": {{Text: "hello"}},
		},
	}

	p := NewPipeline(provider, defaultLanguages, time.Second, nil)
	if _, err := p.Fetch(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(provider.attempts) != 1 {
		t.Errorf("expected early exit after 1 attempt, got %v", provider.attempts)
	}
}

func TestFetchExhaustsAllLanguagesOnEmptyResults(t *testing.T) {
	provider := &stubProvider{}

	p := NewPipeline(provider, defaultLanguages, time.Second, nil)
	_, err := p.Fetch(context.Background(), "dQw4w9WgXcQ")

	var notAvail *NotAvailableError
	if !errors.As(err, &notAvail) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if notAvail.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", notAvail.VideoID)
	}
	if notAvail.LastErr == nil {
		t.Error("expected last attempt error to be recorded")
	}

	if len(provider.attempts) != len(defaultLanguages) {
		t.Errorf("expected %d attempts, got %d", len(defaultLanguages), len(provider.attempts))
	}
}

func TestFetchMovesOnWhenAttemptHangs(t *testing.T) {
	provider := &stubProvider{
		hangOn: map[string]bool{"en": true},
		results: map[string][]Item{
			"en-US": {{Text: "eventually"}},
		},
	}

	p := NewPipeline(provider, defaultLanguages, 50*time.Millisecond, nil)

	start := time.Now()
	items, err := p.Fetch(context.Background(), "dQw4w9WgXcQ")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := Transcript(items); got != "eventually" {
		t.Errorf("Transcript = %q", got)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("pipeline moved on before the attempt timeout: %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("pipeline took far longer than the attempt timeout: %v", elapsed)
	}
}

func TestFetchStopsWhenRequestContextExpires(t *testing.T) {
	provider := &stubProvider{
		hangOn: map[string]bool{"en": true, "en-US": true, "en-GB": true, "": true},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	p := NewPipeline(provider, defaultLanguages, 50*time.Millisecond, nil)
	_, err := p.Fetch(ctx, "dQw4w9WgXcQ")

	var notAvail *NotAvailableError
	if !errors.As(err, &notAvail) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if len(provider.attempts) >= len(defaultLanguages) {
		t.Errorf("expected the expired request context to cut the walk short, got %d attempts", len(provider.attempts))
	}
}

func TestFallbackStateMachine(t *testing.T) {
	fb := newFallback([]string{"en", ""})

	lang, ok := fb.pending()
	if !ok || lang != "en" {
		t.Fatalf("pending() = %q, %v", lang, ok)
	}

	fb.fail("en", fmt.Errorf("nope"))
	lang, ok = fb.pending()
	if !ok || lang != "" {
		t.Fatalf("after one failure pending() = %q, %v", lang, ok)
	}

	fb.fail("", fmt.Errorf("still no"))
	if _, ok := fb.pending(); ok {
		t.Error("expected exhausted state after last language failed")
	}
	if fb.state != stateExhausted {
		t.Errorf("state = %v, want exhausted", fb.state)
	}
	if fb.lastErr == nil {
		t.Error("lastErr should carry the final failure")
	}
}

func TestFallbackSucceededStops(t *testing.T) {
	fb := newFallback([]string{"en", ""})
	fb.succeed()
	if _, ok := fb.pending(); ok {
		t.Error("succeeded fallback should have no pending language")
	}
	// Further failures must not resurrect the walk.
	fb.fail("en", fmt.Errorf("late"))
	if fb.state != stateSucceeded {
		t.Errorf("state = %v, want succeeded", fb.state)
	}
}

func TestTranscript(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name:  "trims and joins",
			items: []Item{{Text: "Hi "}, {Text: " there"}},
			want:  "Hi there",
		},
		{
			name:  "drops empty items",
			items: []Item{{Text: "a"}, {Text: "   "}, {Text: ""}, {Text: "b"}},
			want:  "a b",
		},
		{
			name:  "decodes entities",
			items: []Item{{Text: "it&amp;s"}, {Text: "&#72;i"}},
			want:  "it&s Hi",
		},
		{
			name:  "empty track",
			items: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcript(tt.items); got != tt.want {
				t.Errorf("Transcript() = %q, want %q", got, tt.want)
			}
		})
	}
}
