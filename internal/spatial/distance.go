package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/run-tracker-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Distance calculates the great-circle distance between two coordinates in meters
func Distance(a, b models.Coordinate) float64 {
	return HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// RouteDistance calculates the cumulative length of a route polyline in meters
// as the sum of consecutive-pair distances. Routes with fewer than two points
// have zero length.
func RouteDistance(coords []models.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += Distance(coords[i-1], coords[i])
	}
	return total
}
