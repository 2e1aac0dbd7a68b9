package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"
)

const (
	// maxAvatarBytes bounds how much of a remote avatar is read.
	maxAvatarBytes = 5 << 20
	// maxAvatarSide bounds the declared dimensions decoded into memory.
	maxAvatarSide = 2048
)

var (
	errNonPublicAddress = errors.New("avatar host resolves to a non-public address")
	errAvatarTooLarge   = errors.New("avatar dimensions too large")
)

// cgnat is the shared address space of RFC 6598, not covered by net.IP.IsPrivate.
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

var avatarClient = newAvatarClient()

// newAvatarClient dials public addresses only. The check runs on every
// connection, so redirects to internal hosts fail too.
func newAvatarClient() *http.Client {
	dialer := &net.Dialer{Timeout: 3 * time.Second, Control: publicOnly}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   3 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}
	return &http.Client{Timeout: 5 * time.Second, Transport: transport}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%w: %s", errNonPublicAddress, host)
	}
	return nil
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() || cgnat.Contains(ip))
}

// FetchAvatar downloads and decodes the image behind an avatar URL.
func FetchAvatar(ctx context.Context, rawURL string) (image.Image, error) {
	return fetchAvatar(ctx, avatarClient, rawURL)
}

func fetchAvatar(ctx context.Context, client *http.Client, rawURL string) (image.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported avatar URL scheme %q", u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("avatar fetch returned status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxAvatarBytes)
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(body, &header))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxAvatarSide || cfg.Height > maxAvatarSide {
		return nil, fmt.Errorf("%w: %dx%d", errAvatarTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(io.MultiReader(&header, body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar: %w", err)
	}
	return img, nil
}
