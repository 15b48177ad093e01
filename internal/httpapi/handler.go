package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manikumarntv-crypto/aicconect/internal/liaison"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/logging"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/session"
)

// Options tunes the transport.
type Options struct {
	// AllowedOrigins restricts websocket origins; empty allows any.
	AllowedOrigins []string
	// MetricsHandler serves /metrics; nil selects the default Prometheus registry.
	MetricsHandler http.Handler
}

// RegisterRoutes wires liaison routes onto the provided router.
func RegisterRoutes(r chi.Router, svc *liaison.Service, logger *slog.Logger, opts Options) {
	h := &handler{service: svc, logger: logger}
	stream := newStreamHandler(svc, logger, opts.AllowedOrigins)

	metrics := opts.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)
	r.Get("/v1/architecture", h.architecture)

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware())
		r.Use(requestLogger(logger))

		r.Route("/v1/comments", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.submit)
			r.Get("/stream", stream.ServeHTTP)
		})
		r.Get("/v1/dashboard", h.dashboard)
	})
}

type handler struct {
	service *liaison.Service
	logger  *slog.Logger
}

type commentResponse struct {
	ID        string `json:"id"`
	UserRole  string `json:"userRole"`
	Text      string `json:"text"`
	Lang      string `json:"lang"`
	LangCode  string `json:"langCode"`
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
	Reply     string `json:"reply"`
	Flagged   bool   `json:"flagged"`
	Timestamp string `json:"timestamp"`
}

type listResponse struct {
	Data       []commentResponse `json:"data"`
	Total      int               `json:"total"`
	Processing bool              `json:"processing"`
}

type submitRequest struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())

	comments, err := h.service.Feed(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	busy, err := h.service.Busy(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	payload := listResponse{
		Data:       make([]commentResponse, len(comments)),
		Total:      len(comments),
		Processing: busy,
	}
	for i, c := range comments {
		payload.Data[i] = mapComment(c)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())

	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	comment, err := h.service.Submit(r.Context(), sessionID, liaison.SubmitInput{Role: body.Role, Text: body.Text})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapComment(comment))
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())

	dashboard, err := h.service.Dashboard(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *handler) architecture(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, liaison.SystemArchitecture())
}

func (h *handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, liaison.ErrEmptyText):
		writeError(w, r, http.StatusBadRequest, liaison.ErrEmptyText.Error())
	case errors.Is(err, liaison.ErrSessionRequired):
		writeError(w, r, http.StatusBadRequest, liaison.ErrSessionRequired.Error())
	case errors.Is(err, liaison.ErrInvalidInput):
		message := err.Error()
		if idx := strings.Index(message, ":"); idx >= 0 {
			message = strings.TrimSpace(message[idx+1:])
		}
		writeError(w, r, http.StatusBadRequest, message)
	case errors.Is(err, liaison.ErrSubmissionInFlight):
		writeError(w, r, http.StatusConflict, liaison.ErrSubmissionInFlight.Error())
	default:
		logging.FromContext(r.Context(), h.logger).ErrorContext(r.Context(), "unhandled liaison error", slog.String("error", err.Error()))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func mapComment(c liaison.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		UserRole:  string(c.Role),
		Text:      c.Text,
		Lang:      string(c.Language),
		LangCode:  c.Language.Tag().String(),
		Category:  c.Category,
		Sentiment: string(c.Sentiment),
		Reply:     c.Reply,
		Flagged:   c.Flagged,
		Timestamp: c.Timestamp.Format(time.RFC3339),
	}
}
