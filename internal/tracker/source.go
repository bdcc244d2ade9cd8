package tracker

import (
	"errors"

	"github.com/jengzang/run-tracker-go/internal/models"
)

// Sensor error taxonomy. ErrUnsupported is structural (the host has no
// position capability) and aborts Start without a state change. The other
// errors are delivered through the error callback during a run and never
// force a transition.
var (
	ErrUnsupported      = errors.New("position source not supported on this host")
	ErrPermissionDenied = errors.New("position permission denied")
	ErrUnavailable      = errors.New("position temporarily unavailable")
	ErrTimeout          = errors.New("position request timed out")
)

// FixFunc receives position fixes.
type FixFunc func(models.Fix)

// ErrorFunc receives sensor errors.
type ErrorFunc func(error)

// Source delivers position fixes by callback at its own cadence. A Source
// must not invoke onFix synchronously from within Subscribe.
type Source interface {
	Subscribe(onFix FixFunc, onError ErrorFunc) (Subscription, error)
}

// Subscription is a handle for cancelling fix delivery. Unsubscribe is
// idempotent; after it returns no further callbacks are started.
type Subscription interface {
	Unsubscribe()
}
