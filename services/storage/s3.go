package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3StorageService implements StorageService on an S3 bucket.
type S3StorageService struct {
	client *s3.Client
	bucket string
	region string
	now    func() time.Time
}

func NewS3StorageService(ctx context.Context, bucket, region string) (*S3StorageService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3StorageService{client: s3.NewFromConfig(cfg), bucket: bucket, region: region, now: time.Now}, nil
}

func (s *S3StorageService) Upload(ctx context.Context, folder, fileName string, r io.Reader, contentType string) (string, error) {
	key := ObjectPath(folder, fileName, s.now())
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s/%s", s.host(), key), nil
}

func (s *S3StorageService) ObjectPathOf(rawURL, folder string) (string, bool) {
	if s.bucket == "" {
		return "", false
	}
	rest, ok := urlPathAfter(rawURL, s.host(), "/")
	if !ok {
		return "", false
	}
	return inFolder(rest, folder)
}

// host is the virtual-hosted endpoint of the bucket.
func (s *S3StorageService) host() string {
	return fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

func (s *S3StorageService) Delete(ctx context.Context, objectPath string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", objectPath, err)
	}
	return nil
}
