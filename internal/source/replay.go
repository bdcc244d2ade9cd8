package source

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/tracker"
)

// Replay feeds recorded fixes at a fixed cadence, for running the server
// without a real device. The fixture file holds a JSON array of fixes. The
// cursor survives unsubscribe, so pausing and resuming a run continues the
// recording instead of restarting it.
type Replay struct {
	interval time.Duration

	mu     sync.Mutex
	fixes  []models.Fix
	cursor int
	active bool
}

// NewReplay loads a fixture file of recorded fixes
func NewReplay(path string, interval time.Duration) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	var fixes []models.Fix
	if err := json.Unmarshal(data, &fixes); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return &Replay{fixes: fixes, interval: interval}, nil
}

// Subscribe starts playback on its own goroutine. Playback stops when the
// recording runs out; like a stalled sensor, that simply yields no further
// fixes.
func (r *Replay) Subscribe(onFix tracker.FixFunc, onError tracker.ErrorFunc) (tracker.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return nil, fmt.Errorf("replay already has a subscriber")
	}
	r.active = true

	stop := make(chan struct{})
	go r.play(onFix, stop)
	return &replaySubscription{replay: r, stop: stop}, nil
}

func (r *Replay) play(onFix tracker.FixFunc, stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fix, ok := r.next(stop)
			if !ok {
				return
			}
			onFix(fix)
		}
	}
}

// next advances the cursor unless playback was cancelled. Checking the stop
// channel under the lock keeps a tick racing Unsubscribe from emitting after
// cancellation.
func (r *Replay) next(stop chan struct{}) (models.Fix, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-stop:
		return models.Fix{}, false
	default:
	}
	if r.cursor >= len(r.fixes) {
		return models.Fix{}, false
	}
	fix := r.fixes[r.cursor]
	r.cursor++
	return fix, true
}

type replaySubscription struct {
	replay *Replay
	stop   chan struct{}
	once   sync.Once
}

func (s *replaySubscription) Unsubscribe() {
	s.once.Do(func() {
		s.replay.mu.Lock()
		close(s.stop)
		s.replay.active = false
		s.replay.mu.Unlock()
	})
}
