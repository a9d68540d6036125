package summary

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"tubescribe/errors"
)

type stubCompleter struct {
	text      string
	err       error
	calls     int
	lastUser  string
	lastToken int
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	s.calls++
	s.lastUser = user
	s.lastToken = maxTokens
	return s.text, s.err
}

func TestSummarizeRejectsEmptyTranscript(t *testing.T) {
	completer := &stubCompleter{}
	svc := NewService(completer, Config{Configured: true, MaxTokens: 5000}, nil)

	if _, err := svc.Summarize(context.Background(), ""); !errors.IsInvalidInput(err) {
		t.Errorf("expected invalid input error, got %v", err)
	}
	if completer.calls != 0 {
		t.Error("completer must not be called for empty input")
	}
}

func TestSummarizeUnconfigured(t *testing.T) {
	completer := &stubCompleter{}
	svc := NewService(completer, Config{Configured: false}, nil)

	_, err := svc.Summarize(context.Background(), "some transcript")

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != "Summary service is not configured" {
		t.Errorf("missing credential must be reported distinctly, got %q", appErr.Message)
	}
	if completer.calls != 0 {
		t.Error("completer must not be called without a credential")
	}
}

func TestSummarizeReturnsProviderTextVerbatim(t *testing.T) {
	completer := &stubCompleter{text: "X"}
	svc := NewService(completer, Config{Configured: true, MaxTokens: 5000}, nil)

	got, err := svc.Summarize(context.Background(), "a transcript")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "X" {
		t.Errorf("Summarize() = %q, want provider output unmodified", got)
	}
	if completer.lastToken != 5000 {
		t.Errorf("max tokens = %d, want 5000", completer.lastToken)
	}
	if !strings.HasSuffix(completer.lastUser, "a transcript") {
		t.Errorf("user prompt must embed the transcript verbatim, got %q", completer.lastUser)
	}
}

func TestSummarizeSingleAttempt(t *testing.T) {
	completer := &stubCompleter{err: stderrors.New("rate limited")}
	svc := NewService(completer, Config{Configured: true}, nil)

	if _, err := svc.Summarize(context.Background(), "a transcript"); err == nil {
		t.Fatal("expected error from failed completion")
	}
	if completer.calls != 1 {
		t.Errorf("completion must not be retried, got %d calls", completer.calls)
	}
}
