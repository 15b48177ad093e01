package liaison

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("c-%03d", s.next)
}

var testNow = time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, gen TextGenerator) (*Service, *SessionStore) {
	t.Helper()
	clock := fixedClock{now: testNow}
	sessions := NewSessionStore(clock, time.Hour)
	svc, err := NewService(sessions, NewReplyGenerator(gen, discardLogger()), clock, &sequenceIDs{}, discardLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, sessions
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	clock := fixedClock{now: testNow}
	sessions := NewSessionStore(clock, time.Hour)
	replies := NewReplyGenerator(&fakeGenerator{}, discardLogger())

	if _, err := NewService(nil, replies, clock, &sequenceIDs{}, nil); err == nil {
		t.Fatalf("expected missing session store to fail")
	}
	if _, err := NewService(sessions, nil, clock, &sequenceIDs{}, nil); err == nil {
		t.Fatalf("expected missing reply generator to fail")
	}
	if _, err := NewService(sessions, replies, nil, &sequenceIDs{}, nil); err == nil {
		t.Fatalf("expected missing clock to fail")
	}
	if _, err := NewService(sessions, replies, clock, nil, nil); err == nil {
		t.Fatalf("expected missing id generator to fail")
	}
}

func TestSubmitRejectsBlankText(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Submit(ctx, "s1", SubmitInput{Text: text}); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("Submit(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be invoked for blank text, got %d calls", gen.calls)
	}
	feed, _ := svc.Feed(ctx, "s1")
	if len(feed) != len(SeedComments(testNow)) {
		t.Fatalf("blank submissions must not create records, feed has %d", len(feed))
	}
}

func TestSubmitRejectsUnknownRole(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestService(t, gen)

	_, err := svc.Submit(context.Background(), "s1", SubmitInput{Role: "Minister", Text: "hello"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be invoked for an invalid role")
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{})
	if _, err := svc.Submit(context.Background(), " ", SubmitInput{Text: "hello"}); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestSubmitRecordsComment(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		return "మీ సమస్యను గుర్తించాము.", nil
	}}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	text := "  మా గ్రామంలో రోడ్డు బాగాలేదు  "
	comment, err := svc.Submit(ctx, "s1", SubmitInput{Role: "farmer", Text: text})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if comment.ID != "c-001" {
		t.Fatalf("unexpected id %q", comment.ID)
	}
	if comment.Role != RoleFarmer || comment.Text != text || comment.Language != LanguageTelugu {
		t.Fatalf("unexpected comment %+v", comment)
	}
	if comment.Category != PlaceholderCategory || comment.Sentiment != PlaceholderSentiment || comment.Flagged {
		t.Fatalf("placeholder classification not applied: %+v", comment)
	}
	if comment.Reply != "మీ సమస్యను గుర్తించాము." {
		t.Fatalf("unexpected reply %q", comment.Reply)
	}
	if !comment.Timestamp.Equal(testNow) {
		t.Fatalf("unexpected timestamp %s", comment.Timestamp)
	}

	feed, _ := svc.Feed(ctx, "s1")
	if len(feed) != 4 || feed[0].ID != comment.ID {
		t.Fatalf("expected new comment at head of a 4 item feed, got %d items head %q", len(feed), feed[0].ID)
	}
	busy, _ := svc.Busy(ctx, "s1")
	if busy {
		t.Fatalf("in-flight flag must be cleared after submission")
	}
}

func TestSubmitFallbackOnGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		return "", errors.New("network unreachable")
	}}
	svc, _ := newTestService(t, gen)

	comment, err := svc.Submit(context.Background(), "s1", SubmitInput{Text: "Where is my ration card?"})
	if err != nil {
		t.Fatalf("generator failure must not surface, got %v", err)
	}
	if comment.Reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", comment.Reply)
	}
}

func TestSubmitPlaceholderOnEmptyGeneration(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		return "", nil
	}}
	svc, _ := newTestService(t, gen)

	comment, err := svc.Submit(context.Background(), "s1", SubmitInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if comment.Reply != PlaceholderReply {
		t.Fatalf("expected placeholder reply, got %q", comment.Reply)
	}
}

func TestSubmitOrdering(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	before, _ := svc.Feed(ctx, "s1")
	a, err := svc.Submit(ctx, "s1", SubmitInput{Text: "A"})
	if err != nil {
		t.Fatalf("Submit A: %v", err)
	}
	b, err := svc.Submit(ctx, "s1", SubmitInput{Text: "B"})
	if err != nil {
		t.Fatalf("Submit B: %v", err)
	}

	feed, _ := svc.Feed(ctx, "s1")
	if len(feed) != len(before)+2 {
		t.Fatalf("expected %d comments, got %d", len(before)+2, len(feed))
	}
	if feed[0].ID != b.ID || feed[1].ID != a.ID {
		t.Fatalf("expected B then A at head, got %q, %q", feed[0].ID, feed[1].ID)
	}
	for i, prior := range before {
		if feed[i+2].ID != prior.ID {
			t.Fatalf("prior comment %d moved: got %q want %q", i, feed[i+2].ID, prior.ID)
		}
	}

	seen := map[string]bool{}
	for _, c := range feed {
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestSubmitRejectsWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	gen := &fakeGenerator{generateFn: func(context.Context, Prompt) (string, error) {
		first := false
		once.Do(func() {
			first = true
			close(started)
		})
		if first {
			<-release
		}
		return "done", nil
	}}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	type result struct {
		comment Comment
		err     error
	}
	first := make(chan result, 1)
	go func() {
		c, err := svc.Submit(ctx, "s1", SubmitInput{Text: "first"})
		first <- result{c, err}
	}()
	<-started

	if busy, _ := svc.Busy(ctx, "s1"); !busy {
		t.Fatalf("expected session to be busy while awaiting the reply")
	}
	if _, err := svc.Submit(ctx, "s1", SubmitInput{Text: "second"}); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if _, err := svc.Submit(ctx, "other-session", SubmitInput{Text: "independent"}); err != nil {
		t.Fatalf("other sessions must not be blocked: %v", err)
	}

	close(release)
	res := <-first
	if res.err != nil || res.comment.Reply != "done" {
		t.Fatalf("first submission failed: %+v", res)
	}

	if _, err := svc.Submit(ctx, "s1", SubmitInput{Text: "third"}); err != nil {
		t.Fatalf("submission after completion should succeed: %v", err)
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(ctx context.Context, _ Prompt) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "still answered", nil
	}}
	svc, _ := newTestService(t, gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	comment, err := svc.Submit(ctx, "s1", SubmitInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if comment.Reply != "still answered" {
		t.Fatalf("generation should not observe caller cancellation, got %q", comment.Reply)
	}
}

func TestSubscribeReceivesNewComments(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	updates, cancel, err := svc.Subscribe(ctx, "s1")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	defer cancel()

	comment, err := svc.Submit(ctx, "s1", SubmitInput{Text: "live"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	select {
	case got := <-updates:
		if got.ID != comment.ID {
			t.Fatalf("expected %q, got %q", comment.ID, got.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for live update")
	}
}

func TestDashboardReflectsFeed(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	d, err := svc.Dashboard(ctx, "s1")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if d.TotalComments != 3 || d.EscalatedIssues != 1 || d.SentimentScore != 75 {
		t.Fatalf("unexpected seeded dashboard: %+v", d)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, "s1", SubmitInput{Text: fmt.Sprintf("msg %d", i)}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	d, _ = svc.Dashboard(ctx, "s1")
	if d.TotalComments != 6 || d.EscalatedIssues != 1 || d.SentimentScore != 85 {
		t.Fatalf("unexpected dashboard after submissions: %+v", d)
	}
	if len(d.HighPriority) != 5 || d.HighPriority[0].Category != PlaceholderCategory {
		t.Fatalf("expected five newest rows, got %+v", d.HighPriority)
	}
}
