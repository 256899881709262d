// Package delivery uploads consolidated files and notifies the requester and admin.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/Veraticus/billfold/internal/service"
)

// S3Uploader stores consolidated PDFs in an S3 bucket and hands back
// their public URLs.
type S3Uploader struct {
	uploader *s3manager.Uploader
	logger   *slog.Logger
	bucket   string
}

// NewS3Uploader creates an uploader bound to one bucket and region.
// Credentials come from the standard AWS environment.
func NewS3Uploader(bucket, region string) (*S3Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Uploader{
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
		logger:   slog.Default().With("component", "delivery"),
	}, nil
}

// Upload stores the file as an opaque binary object keyed by its base
// name and returns the resulting public URL.
func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for upload: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	key := filepath.Base(path)
	_, err = u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
	u.logger.Info("Uploaded consolidated file", "key", key, "url", url)
	return url, nil
}

// Ensure S3Uploader implements the Uploader interface.
var _ service.Uploader = (*S3Uploader)(nil)
