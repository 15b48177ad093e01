package liaison

import (
	"sync"
	"sync/atomic"
)

const subscriberBuffer = 16

// Feed is one session's comment list, newest first, plus its in-flight flag.
// Comments are only ever prepended.
type Feed struct {
	mu          sync.RWMutex
	comments    []Comment
	ids         map[string]struct{}
	subscribers map[int]chan Comment
	nextSubID   int

	inFlight atomic.Bool
}

// NewFeed returns a feed holding initial in the given (newest first) order.
func NewFeed(initial []Comment) *Feed {
	f := &Feed{
		comments:    make([]Comment, 0, len(initial)),
		ids:         make(map[string]struct{}, len(initial)),
		subscribers: make(map[int]chan Comment),
	}
	for _, c := range initial {
		if _, dup := f.ids[c.ID]; dup {
			continue
		}
		f.ids[c.ID] = struct{}{}
		f.comments = append(f.comments, c)
	}
	return f
}

// Prepend puts c at the head of the feed and notifies live subscribers.
func (f *Feed) Prepend(c Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.ids[c.ID]; exists {
		return ErrConflict
	}
	f.ids[c.ID] = struct{}{}

	next := make([]Comment, 0, len(f.comments)+1)
	next = append(next, c)
	f.comments = append(next, f.comments...)

	for _, ch := range f.subscribers {
		// Slow subscribers miss live frames; the list endpoint stays authoritative.
		select {
		case ch <- c:
		default:
		}
	}
	return nil
}

// List returns a copy of the feed, newest first.
func (f *Feed) List() []Comment {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Comment, len(f.comments))
	copy(out, f.comments)
	return out
}

// Len reports the number of comments.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.comments)
}

// TryBegin marks a submission in flight; it reports false if one already is.
func (f *Feed) TryBegin() bool {
	return f.inFlight.CompareAndSwap(false, true)
}

// End clears the in-flight flag.
func (f *Feed) End() {
	f.inFlight.Store(false)
}

// InFlight reports whether a submission is awaiting its reply.
func (f *Feed) InFlight() bool {
	return f.inFlight.Load()
}

// Subscribe streams comments prepended after the call. cancel must be called to release the channel.
func (f *Feed) Subscribe() (<-chan Comment, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSubID
	f.nextSubID++
	ch := make(chan Comment, subscriberBuffer)
	f.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subscribers, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (f *Feed) subscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}
