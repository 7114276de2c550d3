package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint_Valid(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"victoria harbour", HKCenterLat, HKCenterLon},
		{"origin", 0, 0},
		{"lat boundary high", 90, 0},
		{"lat boundary low", -90, 0},
		{"lon boundary high", 0, 180},
		{"lon boundary low", 0, -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := NewGeoPoint(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.lat, point.Lat)
			assert.Equal(t, tt.lon, point.Lon)
		})
	}
}

func TestNewGeoPoint_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"lat above 90", 90.000001, 114},
		{"lat below -90", -91, 114},
		{"lon above 180", 22, 181},
		{"lon below -180", 22, -180.5},
		{"lat NaN", math.NaN(), 114},
		{"lon NaN", 22, math.NaN()},
		{"lat infinite", math.Inf(1), 114},
		{"lon infinite", 22, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeoPoint(tt.lat, tt.lon)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestGeoPoint_InHongKong(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"victoria harbour", HKCenterLat, HKCenterLon, true},
		{"south-west corner", HKLatMin, HKLonMin, true},
		{"north-east corner", HKLatMax, HKLonMax, true},
		{"just north of box", HKLatMax + 0.01, HKCenterLon, false},
		{"just west of box", HKCenterLat, HKLonMin - 0.01, false},
		{"london", 51.5074, -0.1278, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := GeoPoint{Lat: tt.lat, Lon: tt.lon}
			assert.Equal(t, tt.want, point.InHongKong())
		})
	}
}

func TestGeoPoint_String(t *testing.T) {
	point := GeoPoint{Lat: 22.302711, Lon: 114.177216}
	assert.Equal(t, "22.302711, 114.177216", point.String())

	point = GeoPoint{Lat: -1.5, Lon: 0}
	assert.Equal(t, "-1.500000, 0.000000", point.String())
}
