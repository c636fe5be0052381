package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"

	"github.com/agriscience/journal-api/internal/apperr"
)

// ImageStore puts image assets somewhere public and returns their URL.
type ImageStore interface {
	Upload(ctx context.Context, prefix, filename string, content io.Reader) (string, error)
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL overrides the default virtual-hosted S3 URL, for
	// CDN fronting. Optional.
	PublicBaseURL string
}

func (c S3Config) Configured() bool {
	return c.Region != "" && c.Bucket != ""
}

// S3ImageStore stores images in a bucket under generated unique paths.
type S3ImageStore struct {
	cfg      S3Config
	uploader *s3manager.Uploader
}

func NewS3ImageStore(cfg S3Config) (*S3ImageStore, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3ImageStore{
		cfg:      cfg,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Upload stores content under "<prefix>/<uuid>.<ext>" and returns the
// public URL. The original filename only contributes its extension.
func (s *S3ImageStore) Upload(ctx context.Context, prefix, filename string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New(), ext)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   content,
	})
	if err != nil {
		return "", apperr.NewBackend("upload image", err)
	}

	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}
