package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Longitude: 13.413215, Latitude: 52.521918},
		{Longitude: 13.411000, Latitude: 52.522500},
	}

	encoded, err := EncodePolyline(coords)
	require.NoError(t, err)
	assert.Equal(t, `[[13.413215,52.521918],[13.411,52.5225]]`, encoded)

	decoded, err := DecodePolyline(encoded)
	require.NoError(t, err)
	assert.Equal(t, coords, decoded)
}

func TestPolylineEmpty(t *testing.T) {
	encoded, err := EncodePolyline(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	decoded, err := DecodePolyline(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodePolylineMalformed(t *testing.T) {
	_, err := DecodePolyline("{not a polyline}")
	assert.Error(t, err)
}

func TestFixCoordinate(t *testing.T) {
	fix := Fix{Longitude: 13.4, Latitude: 52.5, Accuracy: 12}
	assert.Equal(t, Coordinate{Longitude: 13.4, Latitude: 52.5}, fix.Coordinate())
}
