package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/portfolio-mgmt/pms-wizard/internal/auth"
	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/http/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 5}, zap.NewNop())
	handler := rl.LimitByIP(okHandler)

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, zap.NewNop())
	handler := rl.LimitByIP(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			var problem domain.APIError
			require.NoError(t, json.NewDecoder(w.Body).Decode(&problem))
			assert.Equal(t, domain.ErrorTypeTooManyRequest, problem.Type)
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_WhitelistedPath(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistPaths:    []string{"/health/*"},
	}, zap.NewNop())
	handler := rl.LimitByIP(okHandler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.RemoteAddr = "10.0.0.3:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_LimitsByUser(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 100, RequestsPerMinuteAuth: 1}, zap.NewNop())
	handler := rl.Limit(okHandler)

	serve := func(userID, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
		req.RemoteAddr = ip + ":1"
		req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{UserID: userID}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("alice", "10.0.0.4"))
	assert.Equal(t, http.StatusTooManyRequests, serve("alice", "10.0.0.5"), "the user budget follows the user across IPs")
	assert.Equal(t, http.StatusOK, serve("bob", "10.0.0.4"))
}

func TestCORS_DevelopmentAllowsAllOrigins(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{"GET", "POST"}}
	handler := middleware.CORS(cfg, "development", zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/wizards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Api-Key")
}

func TestCORS_ProductionWithoutOriginsDenies(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{"GET"}}
	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://pms.example.gov"},
		AllowedMethods: []string{"GET"},
	}
	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler)

	for origin, want := range map[string]string{
		"https://pms.example.gov":  "https://pms.example.gov",
		"https://other.example.gov": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
	handler := middleware.SecurityHeaders(cfg)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards/abc", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestLogging_RequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	handler := middleware.Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status_code"])

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := middleware.Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizards", nil).WithContext(context.Background())
	w := httptest.NewRecorder()
	require.NotPanics(t, func() { handler.ServeHTTP(w, req) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var problem domain.APIError
	require.NoError(t, json.NewDecoder(w.Body).Decode(&problem))
	assert.Equal(t, domain.ErrorTypeInternal, problem.Type)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
