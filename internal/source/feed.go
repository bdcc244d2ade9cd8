package source

import (
	"errors"
	"sync"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/tracker"
)

// Feed is a push position source fed by the fix ingest endpoint. At most one
// subscriber is active at a time, matching the one-subscription-per-running-
// interval contract of the session.
type Feed struct {
	mu      sync.Mutex
	onFix   tracker.FixFunc
	onError tracker.ErrorFunc
}

// NewFeed creates an empty feed with no subscriber
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers the callbacks. It fails while another subscriber is
// active.
func (f *Feed) Subscribe(onFix tracker.FixFunc, onError tracker.ErrorFunc) (tracker.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onFix != nil {
		return nil, errors.New("feed already has a subscriber")
	}
	f.onFix = onFix
	f.onError = onError
	return &feedSubscription{feed: f}, nil
}

// Push delivers a fix to the current subscriber. Fixes pushed while nobody is
// subscribed are dropped.
func (f *Feed) Push(fix models.Fix) {
	f.mu.Lock()
	cb := f.onFix
	f.mu.Unlock()
	// Invoked without holding the feed lock so the subscriber may
	// unsubscribe from inside its own critical section.
	if cb != nil {
		cb(fix)
	}
}

// PushError delivers a sensor error to the current subscriber, if any
func (f *Feed) PushError(err error) {
	f.mu.Lock()
	cb := f.onError
	f.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

type feedSubscription struct {
	feed *Feed
	once sync.Once
}

func (s *feedSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		s.feed.onFix = nil
		s.feed.onError = nil
		s.feed.mu.Unlock()
	})
}
