package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
)

// requiredHeaders are always allowed so browser clients can authenticate
// and correlate requests.
var requiredHeaders = []string{"Authorization", "Content-Type", "X-API-Key", RequestIDHeader}

// CORS returns a CORS middleware configured from the application config.
// A "*" origin, or no origins in development, reflects any non-empty
// origin; no origins outside development denies every cross-origin request.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   mergeHeaders(cfg.AllowedHeaders, requiredHeaders),
		ExposedHeaders:   mergeHeaders(cfg.ExposedHeaders, []string{RequestIDHeader, "Content-Disposition"}),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	devLike := environment == "development" || environment == "local" || environment == ""
	anyOrigin := func(r *http.Request, origin string) bool { return origin != "" }

	switch {
	case contains(cfg.AllowedOrigins, "*"):
		if !devLike {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = anyOrigin
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case devLike:
		options.AllowOriginFunc = anyOrigin
		logger.Info("CORS configured to allow all origins in development mode")
	default:
		// An empty AllowedOrigins means "*" to go-chi/cors.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func mergeHeaders(configured, required []string) []string {
	out := append([]string(nil), configured...)
	for _, h := range required {
		if !contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
