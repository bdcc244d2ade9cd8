package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Coordinate represents a single WGS84 route point
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Fix represents one raw position report from a device. Fixes are transient:
// accepted ones contribute a Coordinate to the active route, rejected ones are
// dropped, and none are persisted individually.
type Fix struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Accuracy  float64 `json:"accuracy"` // horizontal error estimate in meters
}

// Coordinate returns the position of the fix without its accuracy.
func (f Fix) Coordinate() Coordinate {
	return Coordinate{Longitude: f.Longitude, Latitude: f.Latitude}
}

// Run represents a finished run. Runs are created once, at finish time, and
// are immutable afterwards.
type Run struct {
	ID             string       `json:"id" db:"id"`
	StartTime      int64        `json:"startTime" db:"start_time"`   // Unix timestamp in milliseconds
	EndTime        int64        `json:"endTime" db:"end_time"`       // Unix timestamp in milliseconds
	DurationMs     int64        `json:"durationMs" db:"duration_ms"` // active time only, pauses excluded
	DistanceMeters float64      `json:"distanceMeters" db:"distance_meters"`
	Coordinates    []Coordinate `json:"coordinates" db:"coordinates_json"`

	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// EncodePolyline serializes a route as a JSON array of [lon, lat] pairs for
// storage in a TEXT column.
func EncodePolyline(coords []Coordinate) (string, error) {
	pairs := make([][2]float64, len(coords))
	for i, c := range coords {
		pairs[i] = [2]float64{c.Longitude, c.Latitude}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("failed to encode polyline: %w", err)
	}
	return string(b), nil
}

// DecodePolyline parses the storage form produced by EncodePolyline.
func DecodePolyline(s string) ([]Coordinate, error) {
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	coords := make([]Coordinate, len(pairs))
	for i, p := range pairs {
		coords[i] = Coordinate{Longitude: p[0], Latitude: p[1]}
	}
	return coords, nil
}

// RunFilter represents filter parameters for querying run history
type RunFilter struct {
	StartTime   int64   `form:"startTime"` // Unix timestamp in milliseconds
	EndTime     int64   `form:"endTime"`   // Unix timestamp in milliseconds
	MinDistance float64 `form:"minDistance"`
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}

// RunsResponse represents a paginated response of runs
type RunsResponse struct {
	Data       []Run `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
