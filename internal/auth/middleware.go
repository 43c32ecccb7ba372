package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	disabled     bool
	logger       *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(cfg.JWTSecret, cfg.Issuer),
		apiKey:       cfg.APIKey,
		disabled:     cfg.Disabled,
		logger:       logger,
	}
}

// Authenticate requires an x-api-key header or a Bearer token
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			user := &UserContext{UserID: "anonymous", DisplayName: "Anonymous", Roles: []Role{RoleBudgetTeam}}
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
			return
		}

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				unauthorized(w, "invalid API key")
				return
			}
			user := &UserContext{UserID: SystemUserID, DisplayName: "System", Roles: []Role{RoleSystem}}
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "missing authorization header")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, "invalid authorization header format")
			return
		}

		user, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			unauthorized(w, err.Error())
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("user_id", user.UserID),
			zap.Strings("roles", user.RolesAsStrings()),
		)
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

// RequireRole ensures the authenticated user has one of roles
func (m *Middleware) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				forbidden(w, "no user context")
				return
			}
			if !user.HasAnyRole(roles...) {
				forbidden(w, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func unauthorized(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, detail)
}

func forbidden(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusForbidden, domain.ErrorTypeForbidden, detail)
}

func writeProblem(w http.ResponseWriter, status int, typ, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   typ,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
