package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	now       func() time.Time
}

const cloudinaryHost = "res.cloudinary.com"

// cloudinaryVersion is the optional v<digits>/ segment ahead of a public id.
var cloudinaryVersion = regexp.MustCompile(`^v\d+/`)

func NewCloudinaryStorageService(cloudName, apiKey, apiSecret string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, cloudName: cloudName, now: time.Now}, nil
}

func (s *CloudinaryStorageService) Upload(ctx context.Context, folder, fileName string, r io.Reader, _ string) (string, error) {
	publicID := publicIDOf(ObjectPath(folder, fileName, s.now()))
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL for %s", publicID)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorageService) Delete(ctx context.Context, objectPath string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicIDOf(objectPath)}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *CloudinaryStorageService) ObjectPathOf(rawURL, folder string) (string, bool) {
	if s.cloudName == "" {
		return "", false
	}
	rest, ok := urlPathAfter(rawURL, cloudinaryHost, "/"+s.cloudName+"/image/upload/")
	if !ok {
		return "", false
	}
	return inFolder(cloudinaryVersion.ReplaceAllString(rest, ""), folder)
}

// publicIDOf drops the extension; Cloudinary appends the format itself.
func publicIDOf(objectPath string) string {
	return strings.TrimSuffix(objectPath, path.Ext(objectPath))
}
