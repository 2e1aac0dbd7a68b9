package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const geoLocationKey = "geoLocation"

// GeoLocation is the subset of an ipapi.co lookup used for zipcode hints.
type GeoLocation struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region_code"`
	Postal      string `json:"postal"`
	CountryCode string `json:"country_code"`
}

// Locator resolves a client IP to a rough location.
type Locator interface {
	Locate(ctx context.Context, ip string) (*GeoLocation, error)
}

const (
	geoCacheTTL        = 24 * time.Hour
	geoCacheMaxEntries = 10000
)

type geoCacheEntry struct {
	geo     *GeoLocation
	expires time.Time
}

// IPAPILocator queries an ipapi-compatible endpoint and caches results per IP
// for a day, holding at most geoCacheMaxEntries. URL holds one %s for the IP.
type IPAPILocator struct {
	URL    string
	Client *http.Client

	mu    sync.RWMutex
	cache map[string]geoCacheEntry
	now   func() time.Time
}

func NewIPAPILocator(url string) *IPAPILocator {
	return &IPAPILocator{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		cache:  make(map[string]geoCacheEntry),
		now:    time.Now,
	}
}

func (l *IPAPILocator) Locate(ctx context.Context, ip string) (*GeoLocation, error) {
	l.mu.RLock()
	entry, ok := l.cache[ip]
	l.mu.RUnlock()
	if ok && l.now().Before(entry.expires) {
		return entry.geo, nil
	}
	if isPrivateIP(ip) {
		return &GeoLocation{IP: ip}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(l.URL, ip), nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation lookup returned status %d", resp.StatusCode)
	}

	geo := &GeoLocation{}
	if err := json.NewDecoder(resp.Body).Decode(geo); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	l.store(ip, geo)
	return geo, nil
}

// store caches geo for ip. When the cache is full, expired entries are
// dropped first and then arbitrary ones until there is room.
func (l *IPAPILocator) store(ip string, geo *GeoLocation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if _, exists := l.cache[ip]; !exists && len(l.cache) >= geoCacheMaxEntries {
		for k, e := range l.cache {
			if !now.Before(e.expires) {
				delete(l.cache, k)
			}
		}
		for k := range l.cache {
			if len(l.cache) < geoCacheMaxEntries {
				break
			}
			delete(l.cache, k)
		}
	}
	l.cache[ip] = geoCacheEntry{geo: geo, expires: now.Add(geoCacheTTL)}
}

func (l *IPAPILocator) cacheSize() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

// isPrivateIP checks if an IP is private, loopback or link-local.
func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast()
}

// GeolocationMiddleware attaches the caller's location to the context when it
// can be resolved. Requests that already carry a zipcode skip the lookup, and
// lookup failures never block the request.
func GeolocationMiddleware(locator Locator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if locator == nil || c.Query("zipcode") != "" {
			c.Next()
			return
		}
		ip := c.ClientIP()
		geo, err := locator.Locate(c.Request.Context(), ip)
		if err != nil {
			utils.GetLogger().Debug("Geolocation unavailable", zap.String("ip", ip), zap.Error(err))
		} else if geo != nil {
			c.Set(geoLocationKey, geo)
		}
		c.Next()
	}
}

// ZipcodeHint returns the postal code resolved for the caller, or "".
func ZipcodeHint(c *gin.Context) string {
	v, ok := c.Get(geoLocationKey)
	if !ok {
		return ""
	}
	geo, ok := v.(*GeoLocation)
	if !ok || geo == nil {
		return ""
	}
	return geo.Postal
}
