package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// Identity copies the caller identity supplied by the fronting identity
// provider into the request context. An absent header leaves the context
// without an identity; handlers that require one reject the request.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.Header.Get("X-Username"))
		if username != "" {
			r = r.WithContext(WithUsername(r.Context(), username))
		}
		next.ServeHTTP(w, r)
	})
}

// WithUsername returns a context carrying the caller identity.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// Username extracts the caller identity from context. Empty when the request
// was anonymous.
func Username(ctx context.Context) string {
	username, ok := ctx.Value(userKey).(string)
	if !ok {
		return ""
	}
	return username
}
