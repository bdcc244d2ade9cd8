package tracker

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/spatial"
)

// State is the lifecycle state of a tracking session.
type State string

// Session lifecycle states
const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Sink receives finished runs. Save failures are the sink's concern; the
// session logs them and stops regardless.
type Sink interface {
	Save(run *models.Run) error
}

// Session owns the lifecycle of a single run: it subscribes to the position
// source while running, feeds accepted fixes into the route, accounts for
// active time across pauses, and hands the finished run to the sink.
//
// All methods are safe for concurrent use. The internal mutex serializes fix
// callbacks against state transitions, so each of them behaves as one
// discrete event: a fix racing a pause or finish is either fully processed
// under the old state or fully dropped. Observers run synchronously under
// that same serialization and must not call back into the session.
type Session struct {
	source Source
	route  Route
	sink   Sink
	filter *FixFilter

	// test seams
	now   func() time.Time
	newID func() string

	mu         sync.Mutex
	state      State
	sub        Subscription
	runID      string
	startTime  time.Time
	pausedDur  time.Duration
	pauseStart time.Time
	last       *models.Coordinate
	onDistance func(meters float64)
	onState    func(State)
}

// NewSession creates a stopped session over the given collaborators
func NewSession(source Source, route Route, sink Sink, filter *FixFilter) *Session {
	return &Session{
		source: source,
		route:  route,
		sink:   sink,
		filter: filter,
		now:    time.Now,
		newID:  uuid.NewString,
		state:  StateStopped,
	}
}

// OnDistanceUpdate registers the observer invoked with the cumulative route
// distance after every accepted fix. Optional; a nil observer is a no-op.
func (s *Session) OnDistanceUpdate(fn func(meters float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDistance = fn
}

// OnStateChange registers the observer invoked with the new state on every
// transition. Optional; a nil observer is a no-op.
func (s *Session) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// Start begins a new run from stopped, or resumes a paused one. Starting
// while already running is a guarded no-op, so a double start can never
// create a second source subscription. If the source cannot be subscribed the
// session state is left untouched and the error is returned for the caller
// to surface.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		return nil

	case StatePaused:
		sub, err := s.source.Subscribe(s.handleFix, s.handleSensorError)
		if err != nil {
			return fmt.Errorf("failed to resume position updates: %w", err)
		}
		s.pausedDur += s.now().Sub(s.pauseStart)
		s.pauseStart = time.Time{}
		s.sub = sub
		s.setState(StateRunning)
		return nil

	default: // stopped
		sub, err := s.source.Subscribe(s.handleFix, s.handleSensorError)
		if err != nil {
			return fmt.Errorf("failed to start position updates: %w", err)
		}
		s.runID = s.newID()
		s.startTime = s.now()
		s.pausedDur = 0
		s.pauseStart = time.Time{}
		s.last = nil
		s.route.Clear()
		s.sub = sub
		s.setState(StateRunning)
		return nil
	}
}

// Pause suspends fix delivery and freezes elapsed time. Pausing while not
// running is a guarded no-op.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return
	}
	// Unsubscribe before touching the rest of the session state; a fix
	// already in flight then fails the running check in handleFix.
	s.sub.Unsubscribe()
	s.sub = nil
	s.pauseStart = s.now()
	s.setState(StatePaused)
}

// Finish ends the run and hands the completed record to the sink. Runs that
// never accepted a fix, or accumulated no active time, are discarded without
// a record. Finishing while stopped is a guarded no-op. The session state is
// reset atomically either way. Returns whether a record was handed off.
func (s *Session) Finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStopped {
		return false
	}
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}

	end := s.now()
	duration := s.elapsedLocked(end)
	coords := s.route.Snapshot()

	saved := false
	if len(coords) > 0 && duration > 0 {
		run := &models.Run{
			ID:             s.runID,
			StartTime:      s.startTime.UnixMilli(),
			EndTime:        end.UnixMilli(),
			DurationMs:     duration.Milliseconds(),
			DistanceMeters: spatial.RouteDistance(coords),
			Coordinates:    coords,
		}
		if err := s.sink.Save(run); err != nil {
			log.Printf("failed to save run %s: %v", run.ID, err)
		} else {
			saved = true
		}
	}

	s.runID = ""
	s.startTime = time.Time{}
	s.pausedDur = 0
	s.pauseStart = time.Time{}
	s.last = nil
	s.route.Clear()
	s.setState(StateStopped)
	return saved
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RunID returns the identifier of the active run, or "" while stopped
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// ElapsedTime returns the active time of the current run, excluding paused
// intervals. It is computed on demand: monotonically non-decreasing while
// running, frozen while paused, zero while stopped.
func (s *Session) ElapsedTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked(s.now())
}

// CurrentDistance returns the cumulative distance of the active route in meters
func (s *Session) CurrentDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return spatial.RouteDistance(s.route.Snapshot())
}

func (s *Session) elapsedLocked(now time.Time) time.Duration {
	switch s.state {
	case StateRunning:
		return now.Sub(s.startTime) - s.pausedDur
	case StatePaused:
		return s.pauseStart.Sub(s.startTime) - s.pausedDur
	default:
		return 0
	}
}

func (s *Session) setState(state State) {
	s.state = state
	if s.onState != nil {
		s.onState(state)
	}
}

func (s *Session) handleFix(fix models.Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A fix can race the unsubscribe that ends a running interval; once the
	// state has moved on it must not touch the route.
	if s.state != StateRunning {
		return
	}
	if !s.filter.Accept(fix, s.last) {
		return
	}
	c := fix.Coordinate()
	s.last = &c
	s.route.Append(c)
	if s.onDistance != nil {
		s.onDistance(spatial.RouteDistance(s.route.Snapshot()))
	}
}

func (s *Session) handleSensorError(err error) {
	// Sensor trouble never forces a transition; the run keeps waiting for
	// the next fix.
	if errors.Is(err, ErrPermissionDenied) {
		log.Printf("position permission denied; run continues without further fixes")
		return
	}
	log.Printf("position source error: %v", err)
}
