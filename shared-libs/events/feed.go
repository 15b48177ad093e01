package events

import "time"

// Feed event types pushed over the live comment stream.
const (
	TypeConnected     = "connected"
	TypeCommentPosted = "comment"
)

// FeedEvent is the frame written to live feed subscribers.
type FeedEvent struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	Comment   any       `json:"comment,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}
