package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

type contextKey string

const tokenContextKey contextKey = "sessionToken"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A bare token without the scheme prefix is accepted too.
func bearerToken(r *http.Request) string {
	h := r.Header.Get(common.AuthHeaderName)
	if h == "" {
		return ""
	}
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(h)
}

// requireToken rejects requests without an Authorization header. It does not
// resolve the token to a user: that is the job of the service the handler
// calls, so a revoked token fails with the proper session error code.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeError(w, r, common.ErrSessionInvalid)
			return
		}
		ctx := context.WithValue(r.Context(), tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromContext returns the token stashed by requireToken.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug(r.Context(), "Request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
