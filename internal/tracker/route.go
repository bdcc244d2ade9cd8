package tracker

import (
	"sync"

	"github.com/jengzang/run-tracker-go/internal/models"
)

// Route stores the growing polyline of the active run. The session owns the
// route exclusively while running or paused and hands an immutable snapshot
// to the sink on finish.
type Route interface {
	Append(models.Coordinate)
	Snapshot() []models.Coordinate
	Clear()
}

// MemoryRoute is the in-memory Route used by the live session.
type MemoryRoute struct {
	mu     sync.Mutex
	coords []models.Coordinate
}

// NewMemoryRoute creates an empty in-memory route
func NewMemoryRoute() *MemoryRoute {
	return &MemoryRoute{}
}

// Append adds a coordinate to the end of the route
func (r *MemoryRoute) Append(c models.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coords = append(r.coords, c)
}

// Snapshot returns a copy of the route in insertion order
func (r *MemoryRoute) Snapshot() []models.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Coordinate, len(r.coords))
	copy(out, r.coords)
	return out
}

// Clear empties the route
func (r *MemoryRoute) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coords = nil
}
