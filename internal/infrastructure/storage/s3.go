package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"clinic-backoffice/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// FileStorage stores uploaded files and returns their public URL.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3API is the subset of the S3 client used by S3Storage.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client        S3API
	bucket        string
	publicBaseURL string
	log           *logrus.Logger
}

func NewS3Storage(client S3API, cfg config.StorageConfig, log *logrus.Logger) *S3Storage {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: base,
		log:           log,
	}
}

// NewS3StorageFromConfig loads AWS credentials from the default chain.
func NewS3StorageFromConfig(ctx context.Context, cfg config.StorageConfig, log *logrus.Logger) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	return NewS3Storage(s3.NewFromConfig(awsCfg), cfg, log), nil
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: s3 put %s: %w", key, err)
	}

	s.log.Infof("Uploaded file to S3: bucket=%s, key=%s", s.bucket, key)
	return s.publicBaseURL + "/" + key, nil
}
