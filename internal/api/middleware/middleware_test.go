package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

type fakeLimiter struct {
	calls   int
	allowed int
	err     error
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.calls <= f.allowed, nil
}

func newJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: "middleware-test-secret", AccessTokenTTL: time.Hour})
}

func protectedRouter(mgr *jwt.Manager, bl TokenBlacklist, roles ...string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(mgr, bl)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleAuth(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		_, hasExp := c.Get(ContextTokenExp)
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserID),
			"role":    c.GetString(ContextRole),
			"jti":     c.GetString(ContextTokenJTI),
			"has_exp": hasExp,
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	mgr := newJWTManager()
	token, err := mgr.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)
	claims, err := mgr.ParseToken(token)
	require.NoError(t, err)

	otherMgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-value", AccessTokenTTL: time.Hour})
	forged, err := otherMgr.GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		blacklist  TokenBlacklist
		wantStatus int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, nil, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", nil, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + forged, nil, http.StatusUnauthorized},
		{"valid", "Bearer " + token, nil, http.StatusOK},
		{"valid lowercase scheme", "bearer " + token, nil, http.StatusOK},
		{"revoked", "Bearer " + token, &fakeBlacklist{revoked: map[string]bool{claims.ID: true}}, http.StatusUnauthorized},
		{"blacklist unavailable", "Bearer " + token, &fakeBlacklist{err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(protectedRouter(mgr, tt.blacklist), tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
				assert.Contains(t, w.Body.String(), `"jti":"`+claims.ID+`"`)
				assert.Contains(t, w.Body.String(), `"has_exp":true`)
			}
		})
	}
}

func TestRoleAuth(t *testing.T) {
	mgr := newJWTManager()
	userToken, _ := mgr.GenerateAccessToken("user-1", "user")
	adminToken, _ := mgr.GenerateAccessToken("admin-1", "admin")

	r := protectedRouter(mgr, nil, "admin")

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminToken).Code)
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: 2}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	for name, limiter := range map[string]RateLimiter{
		"nil limiter":   nil,
		"limiter error": &fakeLimiter{err: errors.New("redis down")},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", RateLimit(limiter, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
				assert.Equal(t, http.StatusOK, w.Code)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// unknown length bodies are cut off while reading
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()), SecurityHeaders())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 100))
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
