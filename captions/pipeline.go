package captions

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Pipeline tries a prioritized list of language tags against one provider,
// short-circuiting on the first non-empty track. Attempts run sequentially:
// parallel attempts would burn provider quota for results that are thrown
// away.
type Pipeline struct {
	provider       Provider
	languages      []string
	attemptTimeout time.Duration
	logger         *logrus.Logger
}

func NewPipeline(provider Provider, languages []string, attemptTimeout time.Duration, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		provider:       provider,
		languages:      languages,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Languages returns the configured fallback order.
func (p *Pipeline) Languages() []string {
	return p.languages
}

// Fetch walks the language fallback until one attempt yields a non-empty
// track. Errors inside the loop are recorded per attempt and never abort
// the walk; only exhaustion or parent-context cancellation ends it early.
func (p *Pipeline) Fetch(ctx context.Context, videoID string) ([]Item, error) {
	fb := newFallback(p.languages)

	for {
		lang, ok := fb.pending()
		if !ok {
			break
		}

		logger := p.logger.WithFields(logrus.Fields{
			"provider": p.provider.Name(),
			"video_id": videoID,
			"language": lang,
		})

		items, err := p.attempt(ctx, videoID, lang)
		switch {
		case err != nil:
			logger.WithError(err).Warn("Caption attempt failed")
			fb.fail(lang, err)
		case len(items) == 0:
			logger.Info("Caption attempt returned no items")
			fb.fail(lang, fmt.Errorf("no caption items for language %q", lang))
		default:
			logger.WithField("items", len(items)).Info("Caption track found")
			fb.succeed()
			return items, nil
		}

		// The request carries its own wall-clock ceiling; once that is
		// gone, further attempts cannot complete.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &NotAvailableError{VideoID: videoID, LastErr: fb.lastErr}
}

// attempt races one provider call against the per-attempt timeout. The
// result channel is buffered so that a reply arriving after the deadline is
// dropped rather than awaited.
func (p *Pipeline) attempt(ctx context.Context, videoID, lang string) ([]Item, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.attemptTimeout)
	defer cancel()

	type outcome struct {
		items []Item
		err   error
	}
	results := make(chan outcome, 1)

	go func() {
		items, err := p.provider.Fetch(attemptCtx, videoID, lang)
		results <- outcome{items: items, err: err}
	}()

	select {
	case out := <-results:
		return out.items, out.err
	case <-attemptCtx.Done():
		return nil, attemptCtx.Err()
	}
}

// fallback is the attempt state machine: pending(lang) → succeeded on the
// first non-empty result, pending → failed(lang) → pending(next), and
// exhausted once the last language has failed.
type fallbackState int

const (
	statePending fallbackState = iota
	stateSucceeded
	stateExhausted
)

type fallback struct {
	languages []string
	index     int
	state     fallbackState
	lastErr   error
}

func newFallback(languages []string) *fallback {
	fb := &fallback{languages: languages}
	if len(languages) == 0 {
		fb.state = stateExhausted
	}
	return fb
}

func (f *fallback) pending() (string, bool) {
	if f.state != statePending {
		return "", false
	}
	return f.languages[f.index], true
}

func (f *fallback) succeed() {
	f.state = stateSucceeded
}

func (f *fallback) fail(lang string, err error) {
	if f.state != statePending {
		return
	}
	f.lastErr = fmt.Errorf("language %q: %w", lang, err)
	f.index++
	if f.index >= len(f.languages) {
		f.state = stateExhausted
	}
}
