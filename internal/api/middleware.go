package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/ratelimit"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
)

// requireAuth is middleware that validates access tokens and attaches user
// context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		claims, err := s.authService.VerifyAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitByIP limits requests per client IP using the given limiter.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimitByIP(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r)

			if !limiter.Allow(key) {
				if s.logger != nil {
					s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
				}
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}

// getEmail extracts the authenticated user email from request context.
// Returns empty string if not authenticated.
func getEmail(ctx context.Context) string {
	if email, ok := ctx.Value(contextKeyEmail).(string); ok {
		return email
	}
	return ""
}

// getClientIP extracts the client IP from the request.
// RealIP middleware has already folded X-Forwarded-For / X-Real-IP into
// RemoteAddr, so only the port needs stripping.
func getClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
