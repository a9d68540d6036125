// Package summary produces an LLM-generated structured summary of a
// transcript.
package summary

import (
	"context"

	"tubescribe/errors"

	"github.com/sirupsen/logrus"
)

// systemPrompt describes the structured-summary format. The completion
// output is returned to the caller untouched.
const systemPrompt = "You are an AI designed to generate detailed, structured summaries of " +
	"long-form content, such as transcripts, articles, or videos. Your goal is to distill " +
	"the material into a clear, concise, and comprehensive overview while preserving key " +
	"details, steps, and intent. Break the summary into logical sections with headings " +
	"(e.g., Introduction, Part 1, Key Takeaways) to enhance readability. Focus on " +
	"actionable insights, technical instructions, and the presenter's main points, " +
	"avoiding unnecessary filler. Use bullet points or numbered lists for clarity where " +
	"appropriate. Do not invent information; base your summary solely on the provided " +
	"content. Aim for a balance between brevity and depth, ensuring a non-expert can " +
	"understand the material while retaining value for experienced users."

const userPromptPrefix = "Please provide a detailed summary of the following transcript, " +
	"using the exact formatting shown in the example:\n\n"

type Service interface {
	// Summarize forwards the transcript to the completion provider and
	// returns the generated text verbatim.
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Completer is the chat-completion capability the service depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

type Config struct {
	// Configured reports whether a provider credential is present. When
	// false, requests fail with a configuration error before any call.
	Configured bool
	MaxTokens  int
}

type service struct {
	completer Completer
	config    Config
	logger    *logrus.Logger
}

func NewService(completer Completer, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		completer: completer,
		config:    config,
		logger:    logger,
	}
}

func (s *service) Summarize(ctx context.Context, transcript string) (string, error) {
	const op = "SummaryService.Summarize"

	if transcript == "" {
		return "", errors.InvalidInput(op, nil, "Transcript is required")
	}

	if !s.config.Configured {
		s.logger.Error("Summary requested but no completion credential is configured")
		return "", errors.Configuration(op, nil, "Summary service is not configured")
	}

	s.logger.WithField("transcript_length", len(transcript)).Info("Requesting summary")

	// Single attempt, no retry: a failed completion is surfaced as-is.
	text, err := s.completer.Complete(ctx, systemPrompt, userPromptPrefix+transcript, s.config.MaxTokens)
	if err != nil {
		s.logger.WithError(err).Error("Completion call failed")
		return "", errors.Internal(op, err, "Failed to generate summary")
	}

	return text, nil
}
