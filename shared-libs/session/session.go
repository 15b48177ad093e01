package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Header carries the caller's session identifier on requests and responses.
const Header = "X-Session-ID"

// QueryParam is accepted for clients that cannot set headers (browser websockets).
const QueryParam = "session_id"

const maxIDLength = 128

type ctxKey string

const sessionCtxKey ctxKey = "aiconnect:session"

// Middleware resolves the session identifier for the wrapped handler, minting a new
// one when the caller has none, and echoes it back in the response header.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := idFromRequest(r)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)

			ctx := context.WithValue(r.Context(), sessionCtxKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func idFromRequest(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(Header))
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get(QueryParam))
	}
	if len(id) > maxIDLength {
		return ""
	}
	return id
}

// IDFromContext extracts the session identifier from the request context.
func IDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(sessionCtxKey).(string)
	return value, ok && value != ""
}

// WithID stores a session identifier in ctx; used by tests and internal callers.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionCtxKey, id)
}
