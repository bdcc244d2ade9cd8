package source

import (
	"github.com/jengzang/run-tracker-go/internal/tracker"
)

// Unsupported is the source used when the host has no position capability at
// all. Subscribing always fails structurally, which makes Start reject the
// run without a state change.
type Unsupported struct{}

// NewUnsupported creates a source that can never deliver fixes
func NewUnsupported() *Unsupported {
	return &Unsupported{}
}

// Subscribe always fails with tracker.ErrUnsupported
func (u *Unsupported) Subscribe(tracker.FixFunc, tracker.ErrorFunc) (tracker.Subscription, error) {
	return nil, tracker.ErrUnsupported
}
