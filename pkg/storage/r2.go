package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	internalConfig "github.com/sefazor/learnhub-backend/internal/config"
	"go.uber.org/zap"
)

// R2Storage keeps lecture videos in a Cloudflare R2 bucket through the S3 API.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *zap.Logger
}

func NewR2Storage(cfg *internalConfig.Config, log *zap.Logger) (*R2Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID))
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.R2.Bucket,
		publicURL: cfg.R2.PublicURL,
		log:       log,
	}, nil
}

// LectureVideoKey builds the object key for a new lecture video upload.
func LectureVideoKey(courseID uint, filename string) string {
	return fmt.Sprintf("lectures/%d/%s%s", courseID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

func (s *R2Storage) Upload(ctx context.Context, key string, src io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	// PutObject needs a known length, so measure seekable readers and buffer the rest.
	if rs, ok := src.(io.ReadSeeker); ok {
		currentPos, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("failed to get current position: %w", err)
		}
		size, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := rs.Seek(currentPos, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek back to start: %w", err)
		}
		input.Body = rs
		input.ContentLength = aws.Int64(size - currentPos)
	} else {
		buf, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("failed to read file content: %w", err)
		}
		input.Body = bytes.NewReader(buf)
		input.ContentLength = aws.Int64(int64(len(buf)))
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.log.Debug("uploaded object", zap.String("key", key), zap.Int64("size", aws.ToInt64(input.ContentLength)))
	return nil
}

func (s *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *R2Storage) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
