package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/run-tracker-go/internal/models"
)

// metersPerDegreeLat converts a small northward offset to degrees of latitude.
const metersPerDegreeLat = 111194.93

func fixNorthOf(base models.Coordinate, meters, accuracy float64) models.Fix {
	return models.Fix{
		Longitude: base.Longitude,
		Latitude:  base.Latitude + meters/metersPerDegreeLat,
		Accuracy:  accuracy,
	}
}

func TestFixFilterAccept(t *testing.T) {
	base := models.Coordinate{Longitude: 13.405000, Latitude: 52.520000}
	filter := NewFixFilter(DefaultMaxAccuracyMeters, DefaultMinMovementMeters)

	tests := []struct {
		name string
		fix  models.Fix
		last *models.Coordinate
		want bool
	}{
		{"first fix with good accuracy", fixNorthOf(base, 0, 10), nil, true},
		{"first fix at accuracy threshold", fixNorthOf(base, 0, 30), nil, true},
		{"accuracy above threshold rejected", fixNorthOf(base, 100, 31), nil, false},
		{"accuracy above threshold rejected despite movement", fixNorthOf(base, 100, 31), &base, false},
		{"jitter below movement threshold rejected", fixNorthOf(base, 2, 10), &base, false},
		{"movement above threshold accepted", fixNorthOf(base, 3.5, 10), &base, true},
		{"standstill rejected", fixNorthOf(base, 0, 10), &base, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Accept(tt.fix, tt.last))
		})
	}
}

func TestFixFilterCustomThresholds(t *testing.T) {
	base := models.Coordinate{Longitude: 13.405000, Latitude: 52.520000}
	filter := NewFixFilter(10, 50)

	assert.False(t, filter.Accept(fixNorthOf(base, 100, 11), nil))
	assert.False(t, filter.Accept(fixNorthOf(base, 40, 5), &base))
	assert.True(t, filter.Accept(fixNorthOf(base, 60, 5), &base))
}
