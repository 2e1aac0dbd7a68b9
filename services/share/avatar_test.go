package share

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is a PNG signature plus an IHDR chunk declaring w x h RGBA pixels
// and no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha
	chunk := append([]byte("IHDR"), ihdr...)

	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&b, binary.BigEndian, uint32(len(ihdr)))
	b.Write(chunk)
	_ = binary.Write(&b, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return b.Bytes()
}

func serveBytes(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchAvatarDecodesImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 12))))
	ts := serveBytes(t, buf.Bytes())

	img, err := fetchAvatar(context.Background(), ts.Client(), ts.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 12), img.Bounds())
}

func TestFetchAvatarRejectsOversizedDimensions(t *testing.T) {
	ts := serveBytes(t, pngHeader(12000, 12000))

	_, err := fetchAvatar(context.Background(), ts.Client(), ts.URL+"/huge.png")
	assert.ErrorIs(t, err, errAvatarTooLarge)
}

func TestFetchAvatarRefusesLoopbackHost(t *testing.T) {
	ts := serveBytes(t, pngHeader(1, 1))

	_, err := FetchAvatar(context.Background(), ts.URL+"/a.png")
	assert.ErrorIs(t, err, errNonPublicAddress)
}

func TestFetchAvatarRejectsNonHTTPScheme(t *testing.T) {
	_, err := FetchAvatar(context.Background(), "file:///etc/passwd")
	assert.Error(t, err)
}

func TestIsPublicIP(t *testing.T) {
	cases := map[string]bool{
		"93.184.216.34":   true,
		"2606:4700::1111": true,
		"127.0.0.1":       false,
		"10.1.2.3":        false,
		"172.16.0.1":      false,
		"192.168.1.10":    false,
		"169.254.169.254": false,
		"100.64.0.1":      false,
		"0.0.0.0":         false,
		"::1":             false,
		"fe80::1":         false,
		"fd00::1":         false,
	}
	for ip, want := range cases {
		assert.Equal(t, want, isPublicIP(net.ParseIP(ip)), ip)
	}
}
