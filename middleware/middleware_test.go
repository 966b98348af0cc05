package middleware

import (
	"Revamp/models"
	"Revamp/pkg/context"
	"Revamp/pkg/jwt"
	stdctx "context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", Auth(secret, time.Hour), func(c *gin.Context) {
		uid, err := context.GetUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})

	w := do(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, w.Body.String())
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = do(r, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := jwt.GenerateToken(secret, 7, "a@ucdavis.edu", time.Hour)
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":7}`, w.Body.String())
	assert.Empty(t, w.Header().Get("X-New-Access-Token"))

	tok, err = jwt.GenerateToken(secret, 7, "a@ucdavis.edu", time.Minute)
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-New-Access-Token"), "near expiry tokens are rotated")
}

type loader struct {
	user *models.User
	err  error
}

func (l loader) CurrentUser(_ stdctx.Context, _ *jwt.Claims) (*models.User, error) {
	return l.user, l.err
}

var errGuest = errors.New("Guest access is not allowed for this endpoint")

func statusOf(err error) (int, bool) {
	if errors.Is(err, errGuest) {
		return http.StatusForbidden, true
	}
	return 0, false
}

func TestActiveUser(t *testing.T) {
	tok, err := jwt.GenerateToken(secret, 7, "a@ucdavis.edu", time.Hour)
	require.NoError(t, err)

	build := func(l loader) *gin.Engine {
		r := gin.New()
		r.GET("/fav", Auth(secret, time.Hour), ActiveUser(l, statusOf), func(c *gin.Context) {
			u, err := CurrentUser(c)
			require.NoError(t, err)
			c.JSON(http.StatusOK, gin.H{"email": u.Email})
		})
		return r
	}

	w := do(build(loader{user: &models.User{ID: 7, Email: "a@ucdavis.edu"}}), http.MethodGet, "/fav", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@ucdavis.edu"}`, w.Body.String())

	w = do(build(loader{err: errGuest}), http.MethodGet, "/fav", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"Guest access is not allowed for this endpoint"}`, w.Body.String())

	w = do(build(loader{err: errors.New("db down")}), http.MethodGet, "/fav", tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type countLimiter struct {
	n   map[string]int
	err error
}

func (l *countLimiter) Allow(_ stdctx.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	if l.err != nil {
		return true, limit, l.err
	}
	l.n[key]++
	if l.n[key] > limit {
		return false, 0, nil
	}
	return true, limit - l.n[key], nil
}

func TestRateLimit(t *testing.T) {
	l := &countLimiter{n: map[string]int{}}
	r := gin.New()
	r.GET("/x", RateLimit(l, "2/minute"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", "").Code)
	w := do(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again later.","message":"Too many requests. Please wait before making more requests."}`, w.Body.String())

	l.err = errors.New("redis down")
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", "").Code, "fail open")
}

func TestParseRate(t *testing.T) {
	n, w, err := ParseRate("30/minute")
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Equal(t, time.Minute, w)

	n, w, err = ParseRate("200/day")
	require.NoError(t, err)
	assert.Equal(t, 200, n)
	assert.Equal(t, 24*time.Hour, w)

	for _, bad := range []string{"", "30", "x/minute", "0/minute", "5/week"} {
		_, _, err := ParseRate(bad)
		assert.Error(t, err, bad)
	}
	assert.Panics(t, func() { MustParseRate("nope") })
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), GinZap())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(HeaderRequestID)) })

	w := do(r, http.MethodGet, "/x", "")
	rid := w.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}

func TestPrometheus(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", MetricsHandler())

	do(r, http.MethodGet, "/x", "")
	w := do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `revamp_http_requests_total{method="GET",path="/x",status="200"}`)
}
