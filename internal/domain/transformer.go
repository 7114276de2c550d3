package domain

import "context"

// Transformer converts between WGS84 coordinates and Hong Kong 1980 grid
// references. The geodetic math lives behind this boundary; implementations
// call the Lands Department transform API.
type Transformer interface {
	// Forward converts a WGS84 point to a grid reference.
	Forward(ctx context.Context, point GeoPoint) (GridResult, error)

	// Reverse converts a grid reference to a WGS84 point.
	Reverse(ctx context.Context, ref GridReference) (GeoPoint, error)
}
