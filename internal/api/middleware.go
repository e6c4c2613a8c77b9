package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

// requestLogger logs each request with method, path, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// rateLimitAnalysis rate limits the analysis endpoints per client IP.
// Glossary matching is cheap; the analyzer-backed endpoints call out to
// the feature-extraction service and need protection.
func (s *Server) rateLimitAnalysis(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !isRateLimitedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		key := clientIP(r)
		if !s.rateLimiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.MarshalWrite(w, &APIError{
				Code:    string(domainerrors.CodeUnavailable),
				Message: "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isRateLimitedPath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/tools/linguistic-analysis") ||
		strings.HasPrefix(path, "/api/v1/tools/pls-evaluation")
}

// clientIP extracts the client IP from the request. RealIP middleware
// already folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
