package persistent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/magtapp/image-service/pkg/s3client"
	"github.com/magtapp/image-service/pkg/types/errs"
)

// ObjectRepo writes uploads into a single bucket with public-read visibility.
type ObjectRepo struct {
	*s3client.S3Client
	uploader      *manager.Uploader
	bucket        string
	endpoint      string
	publicBaseURL string
}

func NewObjectRepo(s3c *s3client.S3Client, bucket, endpoint, publicBaseURL string) *ObjectRepo {
	return &ObjectRepo{
		S3Client:      s3c,
		uploader:      manager.NewUploader(s3c.Client),
		bucket:        bucket,
		endpoint:      strings.TrimRight(endpoint, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (r *ObjectRepo) Bucket() string {
	return r.bucket
}

// Upload hands the reader straight to the store write so the write applies
// back-pressure to the inbound read. A known size goes through a single
// PutObject; size below zero means unknown length, which goes through the
// multipart uploader so at most one part is buffered at a time.
func (r *ObjectRepo) Upload(
	ctx context.Context,
	key string,
	data io.Reader,
	contentType string,
	size int64,
	metadata map[string]string,
) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
		Metadata:    metadata,
	}

	if size < 0 {
		if _, err := r.uploader.Upload(ctx, input); err != nil {
			return "", fmt.Errorf("ObjectRepo - Upload - r.uploader.Upload: %w: %w", errs.ErrStorage, err)
		}

		return r.location(key), nil
	}

	input.ContentLength = aws.Int64(size)

	if _, err := r.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("ObjectRepo - Upload - r.Client.PutObject: %w: %w", errs.ErrStorage, err)
	}

	return r.location(key), nil
}

func (r *ObjectRepo) location(key string) string {
	if r.publicBaseURL != "" {
		return r.publicBaseURL + "/" + key
	}

	return fmt.Sprintf("%s/%s/%s", r.endpoint, r.bucket, key)
}
