// Package storage archives fetched transcripts to S3-compatible object
// storage. The archive is optional and never sits on a request's critical
// path.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
	Bucket    string
}

type ArchiveClient struct {
	client *s3.Client
	bucket string
}

func NewArchiveClient(cfg Config) (*ArchiveClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &ArchiveClient{client: client, bucket: cfg.Bucket}, nil
}

// SaveTranscript uploads one transcript document keyed by video ID.
func (a *ArchiveClient) SaveTranscript(ctx context.Context, videoID, text string) error {
	data := struct {
		VideoID   string    `json:"video_id"`
		Text      string    `json:"text"`
		Timestamp time.Time `json:"timestamp"`
	}{
		VideoID:   videoID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	key := fmt.Sprintf("transcripts/%s.json", videoID)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to archive transcript: %w", err)
	}

	return nil
}
