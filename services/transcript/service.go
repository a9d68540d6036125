// Package transcript turns a user-supplied YouTube URL into plain caption
// text.
package transcript

import (
	"context"
	stderrors "errors"
	"time"

	"tubescribe/captions"
	"tubescribe/errors"
	"tubescribe/videoid"

	"github.com/sirupsen/logrus"
)

type Service interface {
	// Fetch validates the URL, extracts the video ID, and runs the
	// caption-retrieval pipeline. The returned string is the normalized
	// transcript.
	Fetch(ctx context.Context, url string) (string, error)
}

// Fetcher is the slice of the caption pipeline this service needs; the
// concrete *captions.Pipeline satisfies it, and tests substitute stubs.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]captions.Item, error)
}

// Archiver persists successful transcripts out of band. A nil archiver
// disables archiving.
type Archiver interface {
	SaveTranscript(ctx context.Context, videoID, text string) error
}

type Config struct {
	// Debug attaches diagnostic detail (video ID, original URL) to errors.
	Debug bool
}

type service struct {
	pipeline Fetcher
	archiver Archiver
	config   Config
	logger   *logrus.Logger
}

func NewService(pipeline Fetcher, archiver Archiver, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		pipeline: pipeline,
		archiver: archiver,
		config:   config,
		logger:   logger,
	}
}

func (s *service) Fetch(ctx context.Context, url string) (string, error) {
	const op = "TranscriptService.Fetch"
	logger := s.logger.WithField("url", url)

	if url == "" {
		return "", errors.InvalidInput(op, nil, "URL is required")
	}

	videoID, ok := videoid.Extract(url)
	if !ok {
		logger.Info("No video ID in URL")
		return "", errors.InvalidInput(op, nil, "Invalid YouTube URL")
	}

	logger = logger.WithField("video_id", videoID)
	logger.Info("Fetching captions")

	items, err := s.pipeline.Fetch(ctx, videoID)
	if err != nil {
		logger.WithError(err).Error("Caption retrieval failed")
		return "", s.unavailable(op, err, videoID, url)
	}

	text := captions.Transcript(items)
	if text == "" {
		logger.Warn("Caption track flattened to empty text")
		return "", s.unavailable(op, stderrors.New("empty transcript"), videoID, url)
	}

	logger.WithField("length", len(text)).Info("Transcript ready")

	if s.archiver != nil {
		go s.archive(videoID, text)
	}

	return text, nil
}

// archive uploads the transcript in the background; the request does not
// wait for it and a failure only logs.
func (s *service) archive(videoID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.archiver.SaveTranscript(ctx, videoID, text); err != nil {
		s.logger.WithError(err).WithField("video_id", videoID).Warn("Failed to archive transcript")
	}
}

// unavailable folds every retrieval failure, timeouts included, into one
// stable user-facing category. Provider specifics stay out of the message;
// in debug mode the offending identifiers ride along as details.
func (s *service) unavailable(op string, err error, videoID, url string) error {
	appErr := errors.Unavailable(op, err, "Captions are not accessible for this video")
	if s.config.Debug {
		appErr.WithDetails(map[string]interface{}{
			"video_id": videoID,
			"url":      url,
			"cause":    err.Error(),
		})
	}
	return appErr
}
