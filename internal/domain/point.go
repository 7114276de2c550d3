package domain

import (
	"fmt"
	"math"
)

// Hong Kong operational bounds. Points outside this box are still valid
// WGS84 coordinates; callers surface an advisory warning, never an error.
const (
	HKLatMin = 22.15
	HKLatMax = 22.60
	HKLonMin = 113.80
	HKLonMax = 114.45
)

// Victoria Harbour, the default map centre.
const (
	HKCenterLat = 22.302711
	HKCenterLon = 114.177216
)

// GeoPoint is a WGS84 latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewGeoPoint validates the lat/lon domain: latitude in [-90, 90],
// longitude in [-180, 180], both finite.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoPoint{}, fmt.Errorf("non-finite coordinate: %w", ErrOutOfRange)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return GeoPoint{}, fmt.Errorf("lat %g, lon %g: %w", lat, lon, ErrOutOfRange)
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}

// InHongKong reports whether the point falls inside the Hong Kong
// operational bounds box.
func (p GeoPoint) InHongKong() bool {
	return p.Lat >= HKLatMin && p.Lat <= HKLatMax &&
		p.Lon >= HKLonMin && p.Lon <= HKLonMax
}

// String renders the point in the six-decimal "lat, lon" form used for
// display, clipboard copy, and file export.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lon)
}
