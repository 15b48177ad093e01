package liaison

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the citizen's self-declared persona.
type Role string

const (
	RoleStudent   Role = "Student"
	RoleFarmer    Role = "Farmer"
	RoleGigWorker Role = "Gig Worker"
	RoleCitizen   Role = "Citizen"
)

// Roles lists every accepted role in display order.
var Roles = []Role{RoleStudent, RoleFarmer, RoleGigWorker, RoleCitizen}

// ParseRole normalizes case and spacing; an empty value selects RoleCitizen.
func ParseRole(raw string) (Role, error) {
	trimmed := strings.Join(strings.Fields(raw), " ")
	if trimmed == "" {
		return RoleCitizen, nil
	}
	candidate := Role(cases.Title(language.English).String(trimmed))
	for _, role := range Roles {
		if role == candidate {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: role must be one of Student, Farmer, Gig Worker, Citizen", ErrInvalidInput)
}

// Language is the label produced by DetectLanguage.
type Language string

const (
	LanguageTelugu  Language = "Telugu"
	LanguageHindi   Language = "Hindi"
	LanguageEnglish Language = "English"
)

// Tag returns the BCP-47 tag for the label.
func (l Language) Tag() language.Tag {
	switch l {
	case LanguageTelugu:
		return language.Telugu
	case LanguageHindi:
		return language.Hindi
	default:
		return language.English
	}
}

// Sentiment is a closed enum; new comments always carry the placeholder.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Placeholder classification applied to every new comment. No classifier exists;
// these are fixed values, not inferred from content.
const (
	PlaceholderCategory  = "General Query"
	PlaceholderSentiment = SentimentNeutral
)

// Comment is one citizen message paired with the liaison reply. Comments are
// immutable once created.
type Comment struct {
	ID        string    `json:"id"`
	Role      Role      `json:"userRole"`
	Text      string    `json:"text"`
	Language  Language  `json:"lang"`
	Category  string    `json:"category"`
	Sentiment Sentiment `json:"sentiment"`
	Reply     string    `json:"reply"`
	Flagged   bool      `json:"flagged"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitInput captures a citizen submission.
type SubmitInput struct {
	Role string
	Text string
}

// ErrEmptyText indicates a blank or whitespace-only submission; nothing is recorded.
var ErrEmptyText = errors.New("message is required")

// ErrInvalidInput indicates the provided data failed validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrSubmissionInFlight rejects a submission while the session is still awaiting a reply.
var ErrSubmissionInFlight = errors.New("a submission is already being processed")

// ErrConflict indicates a duplicate identifier collision.
var ErrConflict = errors.New("comment already exists")

// ErrSessionRequired indicates the caller did not resolve a session.
var ErrSessionRequired = errors.New("session id is required")

// Clock delivers the current time; extracted for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces unique, creation-ordered identifiers for new comments.
type IDGenerator interface {
	NewID() string
}

// TextGenerator is the capability the reply pipeline needs from a model vendor.
type TextGenerator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt is a single generation request.
type Prompt struct {
	Model             string
	SystemInstruction string
	Text              string
	Temperature       float32
}
