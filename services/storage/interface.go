package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"doitto/config"

	firebase "firebase.google.com/go/v4"
)

// StorageService uploads media blobs and returns a URL they can be fetched from.
type StorageService interface {
	Upload(ctx context.Context, folder, fileName string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
	// ObjectPathOf recovers the object path of a URL this backend issued for
	// an object inside folder. ok is false for any other URL.
	ObjectPathOf(rawURL, folder string) (objectPath string, ok bool)
}

// ObjectPath builds the key an upload is stored under: <folder>/<unix-millis>_<file name>.
func ObjectPath(folder, fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s/%d_%s", strings.Trim(folder, "/"), now.UnixMilli(), name)
}

// NewStorageService builds the backend selected by STORAGE_DRIVER. app is only
// needed by the firebase driver.
func NewStorageService(ctx context.Context, app *firebase.App) (StorageService, error) {
	switch strings.ToLower(config.AppConfig.StorageDriver) {
	case "", "firebase":
		if app == nil {
			return nil, fmt.Errorf("firebase storage requires a firebase app")
		}
		return NewFirebaseStorageService(ctx, app)
	case "cloudinary":
		return NewCloudinaryStorageService(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
	case "s3":
		return NewS3StorageService(ctx, config.AppConfig.S3Bucket, config.AppConfig.AWSRegion)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", config.AppConfig.StorageDriver)
	}
}

// urlPathAfter returns the unescaped path of rawURL following prefix, provided
// rawURL is an http(s) URL on host.
func urlPathAfter(rawURL, host, prefix string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || host == "" {
		return "", false
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", false
	}
	if !strings.EqualFold(u.Hostname(), host) || u.Port() != "" || u.User != nil {
		return "", false
	}
	p, err := url.PathUnescape(u.EscapedPath())
	if err != nil {
		return "", false
	}
	return strings.CutPrefix(p, prefix)
}

// inFolder reports whether objectPath names an object directly under folder
// or one of its subfolders. Paths that clean to something else are rejected.
func inFolder(objectPath, folder string) (string, bool) {
	dir := strings.Trim(folder, "/")
	if dir == "" || !strings.HasPrefix(objectPath, dir+"/") || len(objectPath) == len(dir)+1 {
		return "", false
	}
	if path.Clean(objectPath) != objectPath {
		return "", false
	}
	return objectPath, true
}
