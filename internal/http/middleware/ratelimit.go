package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/auth"
	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// RateLimiter throttles API callers. Anonymous traffic is counted per client
// IP; authenticated traffic per user, so a budget analyst keeps one budget
// across devices while wizard form edits stream in.
type RateLimiter struct {
	enabled bool
	logger  *zap.Logger

	perIP   func(http.Handler) http.Handler
	perUser func(http.Handler) http.Handler

	exemptIPs      map[string]struct{}
	exemptPaths    map[string]struct{}
	exemptPrefixes []string
}

// NewRateLimiter creates a RateLimiter from cfg. Whitelisted paths ending in
// "/*" exempt every path under that prefix.
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		enabled:     cfg.Enabled,
		logger:      logger,
		exemptIPs:   make(map[string]struct{}, len(cfg.WhitelistIPs)),
		exemptPaths: make(map[string]struct{}, len(cfg.WhitelistPaths)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.exemptIPs[ip] = struct{}{}
	}
	for _, p := range cfg.WhitelistPaths {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			rl.exemptPrefixes = append(rl.exemptPrefixes, prefix)
			continue
		}
		rl.exemptPaths[p] = struct{}{}
	}

	rl.perIP = httprate.Limit(cfg.RequestsPerMinute, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "ip:" + clientIP(r), nil
		}),
		httprate.WithLimitHandler(rl.reject),
	)
	rl.perUser = httprate.Limit(cfg.RequestsPerMinuteAuth, time.Minute,
		httprate.WithKeyFuncs(callerKey),
		httprate.WithLimitHandler(rl.reject),
	)

	if cfg.Enabled {
		logger.Info("Rate limiter initialized",
			zap.Int("requests_per_minute", cfg.RequestsPerMinute),
			zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
			zap.Int("exempt_ips", len(cfg.WhitelistIPs)),
			zap.Int("exempt_paths", len(cfg.WhitelistPaths)),
		)
	}
	return rl
}

// Limit applies the per-user budget to authenticated requests and the per-IP
// budget to the rest. It must run after authentication.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}
	byUser := rl.perUser(next)
	byIP := rl.perIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case rl.exempt(r):
			next.ServeHTTP(w, r)
		case hasUser(r):
			byUser.ServeHTTP(w, r)
		default:
			byIP.ServeHTTP(w, r)
		}
	})
}

// LimitByIP applies only the per-IP budget, for use in front of auth.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}
	byIP := rl.perIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		byIP.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if _, ok := rl.exemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range rl.exemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	_, ok := rl.exemptIPs[clientIP(r)]
	return ok
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", clientIP(r)),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	}
	if user, ok := auth.FromContext(r.Context()); ok && user != nil {
		fields = append(fields, zap.String("user_id", user.UserID))
	}
	rl.logger.Warn("rate limit exceeded", fields...)

	w.Header().Set("Retry-After", "60")
	writeProblem(w, http.StatusTooManyRequests, domain.ErrorTypeTooManyRequest,
		"Too many requests. Please try again later.")
}

func hasUser(r *http.Request) bool {
	user, ok := auth.FromContext(r.Context())
	return ok && user != nil
}

// callerKey keys authenticated requests by user. API key callers all share
// the system user id, so they are split by IP instead.
func callerKey(r *http.Request) (string, error) {
	user, ok := auth.FromContext(r.Context())
	switch {
	case !ok || user == nil:
		return "ip:" + clientIP(r), nil
	case user.UserID == auth.SystemUserID:
		return "system:" + clientIP(r), nil
	default:
		return "user:" + user.UserID, nil
	}
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
