package liaison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service orchestrates citizen submissions: detect the language, await a reply,
// and record the exchange in the caller's session feed.
type Service struct {
	sessions *SessionStore
	replies  *ReplyGenerator
	clock    Clock
	ids      IDGenerator
	logger   *slog.Logger
}

// NewService constructs a Service instance with the provided collaborators.
func NewService(sessions *SessionStore, replies *ReplyGenerator, clock Clock, ids IDGenerator, logger *slog.Logger) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if replies == nil {
		return nil, errors.New("reply generator is required")
	}
	if clock == nil {
		return nil, errors.New("clock is required")
	}
	if ids == nil {
		return nil, errors.New("id generator is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sessions: sessions, replies: replies, clock: clock, ids: ids, logger: logger}, nil
}

// Submit records one citizen message and its reply at the head of the session feed.
// Blank text is rejected with ErrEmptyText before any work is done; a second
// submission while one is in flight fails with ErrSubmissionInFlight.
func (s *Service) Submit(ctx context.Context, sessionID string, input SubmitInput) (Comment, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Comment{}, ErrSessionRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		rejectedSubmissions.WithLabelValues("empty").Inc()
		return Comment{}, ErrEmptyText
	}
	role, err := ParseRole(input.Role)
	if err != nil {
		rejectedSubmissions.WithLabelValues("invalid_role").Inc()
		return Comment{}, err
	}

	feed := s.sessions.Get(sessionID)
	if !feed.TryBegin() {
		rejectedSubmissions.WithLabelValues("in_flight").Inc()
		return Comment{}, ErrSubmissionInFlight
	}
	defer feed.End()

	text := input.Text
	lang := DetectLanguage(text)

	// Once issued, generation runs to completion regardless of the caller going away.
	started := s.clock.Now()
	reply := s.replies.Reply(context.WithoutCancel(ctx), text, lang)
	replyLatency.Observe(s.clock.Now().Sub(started).Seconds())

	comment := Comment{
		ID:        s.ids.NewID(),
		Role:      role,
		Text:      text,
		Language:  lang,
		Category:  PlaceholderCategory,
		Sentiment: PlaceholderSentiment,
		Reply:     reply,
		Flagged:   false,
		Timestamp: s.clock.Now().UTC(),
	}
	if err := feed.Prepend(comment); err != nil {
		return Comment{}, fmt.Errorf("record comment: %w", err)
	}
	submissions.WithLabelValues(string(lang)).Inc()

	s.logger.InfoContext(ctx, "comment recorded",
		slog.String("sessionId", sessionID),
		slog.String("commentId", comment.ID),
		slog.String("lang", string(lang)),
		slog.String("role", string(role)),
	)
	return comment, nil
}

// Feed returns the session's comments, newest first.
func (s *Service) Feed(_ context.Context, sessionID string) ([]Comment, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	return s.sessions.Get(sessionID).List(), nil
}

// Busy reports whether the session has a submission awaiting its reply.
func (s *Service) Busy(_ context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, ErrSessionRequired
	}
	return s.sessions.Get(sessionID).InFlight(), nil
}

// Subscribe streams comments recorded in the session from now on.
func (s *Service) Subscribe(_ context.Context, sessionID string) (<-chan Comment, func(), error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, ErrSessionRequired
	}
	ch, cancel := s.sessions.Get(sessionID).Subscribe()
	return ch, cancel, nil
}

// Dashboard summarizes the session feed for the governance view.
func (s *Service) Dashboard(_ context.Context, sessionID string) (Dashboard, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Dashboard{}, ErrSessionRequired
	}
	return BuildDashboard(s.sessions.Get(sessionID).List()), nil
}
