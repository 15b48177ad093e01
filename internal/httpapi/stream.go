package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/manikumarntv-crypto/aicconect/internal/liaison"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/events"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/logging"
	"github.com/manikumarntv-crypto/aicconect/shared-libs/session"
)

const writeWait = 10 * time.Second

// streamHandler pushes newly recorded comments of a session over a websocket.
type streamHandler struct {
	service  *liaison.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader
	origins  map[string]bool
}

func newStreamHandler(svc *liaison.Service, logger *slog.Logger, allowedOrigins []string) *streamHandler {
	h := &streamHandler{service: svc, logger: logger, origins: make(map[string]bool, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		h.origins[o] = true
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *streamHandler) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // non-browser clients
	}
	return h.origins[origin]
}

func (h *streamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	sessionID, _ := session.IDFromContext(r.Context())

	updates, cancelSub, err := h.service.Subscribe(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	defer cancelSub()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The stream is push-only; reading detects the client closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Info("websocket closed unexpectedly", slog.String("error", err.Error()))
				}
				return
			}
		}
	}()

	if err := h.write(conn, events.FeedEvent{Type: events.TypeConnected, SessionID: sessionID, SentAt: time.Now().UTC()}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-updates:
			if !ok {
				return
			}
			frame := events.FeedEvent{Type: events.TypeCommentPosted, SessionID: sessionID, Comment: mapComment(c), SentAt: time.Now().UTC()}
			if err := h.write(conn, frame); err != nil {
				logger.Info("websocket write failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (h *streamHandler) write(conn *websocket.Conn, frame events.FeedEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
