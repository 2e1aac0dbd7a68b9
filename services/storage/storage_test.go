package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "avatars/1700000000123_me.png", ObjectPath("avatars", "me.png", now))
	assert.Equal(t, "banners/1700000000123_my_banner.jpg", ObjectPath("/banners/", "C:\\Users\\x\\my banner.jpg", now))
	assert.Equal(t, "avatars/1700000000123_upload", ObjectPath("avatars", "", now))
}

func TestPublicIDOf(t *testing.T) {
	assert.Equal(t, "avatars/1_me", publicIDOf("avatars/1_me.png"))
	assert.Equal(t, "avatars/1_me", publicIDOf("avatars/1_me"))
}

func TestObjectPathOf(t *testing.T) {
	firebaseSvc := &FirebaseStorageService{bucketName: "doitto.appspot.com"}
	s3Svc := &S3StorageService{bucket: "media", region: "us-east-1"}
	cloudinarySvc := &CloudinaryStorageService{cloudName: "demo"}

	cases := []struct {
		name   string
		svc    StorageService
		url    string
		folder string
		want   string
		ok     bool
	}{
		{"firebase", firebaseSvc, "https://firebasestorage.googleapis.com/v0/b/doitto.appspot.com/o/avatars%2F1_me.png?alt=media", "avatars", "avatars/1_me.png", true},
		{"firebase other bucket", firebaseSvc, "https://firebasestorage.googleapis.com/v0/b/other.appspot.com/o/avatars%2F1_me.png?alt=media", "avatars", "", false},
		{"s3", s3Svc, "https://media.s3.us-east-1.amazonaws.com/banners/1_wide.jpg", "banners", "banners/1_wide.jpg", true},
		{"s3 other bucket", s3Svc, "https://evil.s3.us-east-1.amazonaws.com/banners/1_wide.jpg", "banners", "", false},
		{"s3 other folder", s3Svc, "https://media.s3.us-east-1.amazonaws.com/banners/1_wide.jpg", "avatars", "", false},
		{"s3 traversal", s3Svc, "https://media.s3.us-east-1.amazonaws.com/avatars/../banners/1_wide.jpg", "avatars", "", false},
		{"cloudinary", cloudinarySvc, "https://res.cloudinary.com/demo/image/upload/v17/avatars/1_me.png", "avatars", "avatars/1_me.png", true},
		{"cloudinary unversioned", cloudinarySvc, "https://res.cloudinary.com/demo/image/upload/avatars/1_me.png", "avatars", "avatars/1_me.png", true},
		{"cloudinary other cloud", cloudinarySvc, "https://res.cloudinary.com/evil/image/upload/v17/avatars/1_me.png", "avatars", "", false},
		{"foreign host with folder in path", s3Svc, "https://attacker.example.net/x/avatars/1700000000000_victim.png", "avatars", "", false},
		{"foreign host", firebaseSvc, "https://randomuser.me/api/portraits/men/1.jpg", "avatars", "", false},
		{"folder only", s3Svc, "https://media.s3.us-east-1.amazonaws.com/avatars/", "avatars", "", false},
		{"not http", s3Svc, "ftp://media.s3.us-east-1.amazonaws.com/avatars/1_me.png", "avatars", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.svc.ObjectPathOf(tc.url, tc.folder)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestObjectPathOfRoundTripsS3Upload(t *testing.T) {
	svc := &S3StorageService{bucket: "media", region: "eu-west-1"}
	key := ObjectPath("avatars", "me.png", time.UnixMilli(1))
	got, ok := svc.ObjectPathOf("https://"+svc.host()+"/"+key, "avatars")
	assert.True(t, ok)
	assert.Equal(t, key, got)
}

func TestFirebaseObjectPathOfRoundTripsDownloadURL(t *testing.T) {
	svc := &FirebaseStorageService{bucketName: "doitto.appspot.com"}
	key := ObjectPath("banners", "wide banner.png", time.UnixMilli(1))
	got, ok := svc.ObjectPathOf(svc.downloadURL(key), "banners")
	assert.True(t, ok)
	assert.Equal(t, key, got)
}
