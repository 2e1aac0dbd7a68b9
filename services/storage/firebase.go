package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"doitto/config"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

const firebaseDownloadHost = "firebasestorage.googleapis.com"

// FirebaseStorageService implements StorageService on the project's default bucket.
type FirebaseStorageService struct {
	bucket     *gcs.BucketHandle
	bucketName string
	now        func() time.Time
}

func NewFirebaseStorageService(ctx context.Context, app *firebase.App) (*FirebaseStorageService, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open default bucket: %w", err)
	}
	return &FirebaseStorageService{bucket: bucket, bucketName: config.AppConfig.FirebaseBucket, now: time.Now}, nil
}

func (s *FirebaseStorageService) Upload(ctx context.Context, folder, fileName string, r io.Reader, contentType string) (string, error) {
	objectPath := ObjectPath(folder, fileName, s.now())
	w := s.bucket.Object(objectPath).NewWriter(ctx)

	// Set public read ACL
	w.ACL = []gcs.ACLRule{{Entity: gcs.AllUsers, Role: gcs.RoleReader}}
	w.ObjectAttrs.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return s.downloadURL(objectPath), nil
}

func (s *FirebaseStorageService) Delete(ctx context.Context, objectPath string) error {
	if err := s.bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FirebaseStorageService) ObjectPathOf(rawURL, folder string) (string, bool) {
	if s.bucketName == "" {
		return "", false
	}
	rest, ok := urlPathAfter(rawURL, firebaseDownloadHost, "/v0/b/"+s.bucketName+"/o/")
	if !ok {
		return "", false
	}
	return inFolder(rest, folder)
}

func (s *FirebaseStorageService) downloadURL(objectPath string) string {
	return fmt.Sprintf("https://%s/v0/b/%s/o/%s?alt=media", firebaseDownloadHost, s.bucketName, url.QueryEscape(objectPath))
}
