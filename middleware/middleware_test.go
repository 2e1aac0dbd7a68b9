package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	tokens map[string]*auth.Token
}

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := s.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token expired")
}

type stubLocator struct {
	geo   *GeoLocation
	calls int
}

func (s *stubLocator) Locate(context.Context, string) (*GeoLocation, error) {
	s.calls++
	if s.geo == nil {
		return nil, errors.New("lookup failed")
	}
	return s.geo, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	verifier := stubVerifier{tokens: map[string]*auth.Token{
		"good": {UID: "uid-1", Claims: map[string]interface{}{
			"name":    "Ana",
			"email":   "ana@example.com",
			"picture": "https://img.example.com/ana.png",
		}},
	}}

	r := gin.New()
	r.GET("/me", FirebaseAuthMiddleware(verifier), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUserID(c), "email": id.Email, "photo": id.PhotoURL})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"uid":"uid-1","email":"ana@example.com","photo":"https://img.example.com/ana.png"}`, w.Body.String())
			}
		})
	}
}

func rateLimitedRouter(t *testing.T, perMin int, trusted []string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.Use(RateLimitMiddleware(perMin))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	r := rateLimitedRouter(t, 2, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, hit(r, "203.0.113.7:4000", ""))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.8:4000", ""))
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := rateLimitedRouter(t, 2, nil)

	codes := []int{
		hit(r, "203.0.113.7:4000", "198.51.100.1"),
		hit(r, "203.0.113.7:4000", "198.51.100.2"),
		hit(r, "203.0.113.7:4000", "198.51.100.3"),
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	r := rateLimitedRouter(t, 1, []string{"10.0.0.1"})

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:4000", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:4000", "198.51.100.1"))
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:4000", "198.51.100.2"))
}

func TestRateLimiterStoreDropsIdleLimiters(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(10)
	store.now = func() time.Time { return now }

	store.getLimiter("203.0.113.1")
	store.getLimiter("203.0.113.2")
	assert.Equal(t, 2, store.size())

	now = now.Add(30 * time.Second)
	store.getLimiter("203.0.113.2")

	now = now.Add(50 * time.Second)
	store.getLimiter("203.0.113.3")
	assert.Equal(t, 2, store.size())
	_, kept := store.limiters["203.0.113.2"]
	assert.True(t, kept)
	_, stale := store.limiters["203.0.113.1"]
	assert.False(t, stale)
}

func TestGeolocationMiddlewareZipcodeHint(t *testing.T) {
	locator := &stubLocator{geo: &GeoLocation{Postal: "73301"}}

	r := gin.New()
	r.GET("/search", GeolocationMiddleware(locator), func(c *gin.Context) {
		c.String(http.StatusOK, ZipcodeHint(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, "73301", w.Body.String())
	assert.Equal(t, 1, locator.calls)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?zipcode=10001", nil))
	assert.Equal(t, "", w.Body.String())
	assert.Equal(t, 1, locator.calls)

	locator.geo = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestIPAPILocatorCacheIsBounded(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPAPILocator("http://127.0.0.1:1/%s")
	l.now = func() time.Time { return now }

	for i := 0; i < geoCacheMaxEntries+5; i++ {
		l.store(fmt.Sprintf("ip-%d", i), &GeoLocation{Postal: "73301"})
	}
	assert.Equal(t, geoCacheMaxEntries, l.cacheSize())

	now = now.Add(geoCacheTTL + time.Second)
	l.store("203.0.113.9", &GeoLocation{Postal: "10001"})
	assert.Equal(t, 1, l.cacheSize())
}

func TestIPAPILocatorSkipsPrivateAddresses(t *testing.T) {
	l := NewIPAPILocator("http://127.0.0.1:1/%s")
	geo, err := l.Locate(context.Background(), "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, "", geo.Postal)
}
