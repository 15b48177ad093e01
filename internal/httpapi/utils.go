package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	sharederrors "github.com/manikumarntv-crypto/aicconect/shared-libs/errors"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/logging"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/session"
)

type errorResponse = sharederrors.ErrorResponse

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{
		Code:      sharederrors.CodeForStatus(status),
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// requestLogger stores a logger tagged with the request and session ids in the request context.
func requestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.WithRequestID(base, middleware.GetReqID(r.Context()))
			if id, ok := session.IDFromContext(r.Context()); ok {
				logger = logger.With(slog.String("sessionId", id))
			}
			next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), logger)))
		})
	}
}
