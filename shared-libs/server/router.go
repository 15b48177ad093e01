package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/manikumarntv-crypto/aicconect/shared-libs/dto"
)

// Version is reported by the health endpoint.
const Version = "v0.1.0"

// NewRouter returns a chi router pre-configured with default middleware and a health endpoint.
// Long-running routes (AI replies, websocket streams) are registered without a request timeout.
func NewRouter(service string, register func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: service, Version: Version})
	})

	if register != nil {
		register(r)
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
