package domain

import (
	"errors"
	"fmt"
)

// InputKind discriminates what a free-form input string turned out to be.
type InputKind int

const (
	KindCoordinate InputKind = iota
	KindGrid
)

// Input is the result of interpreting a free-form string that may be either
// a WGS84 coordinate or a grid reference.
type Input struct {
	Kind  InputKind
	Point GeoPoint
	Grid  GridReference
}

// ParseAny interprets text as a WGS84 coordinate first, then as a grid
// reference. A coordinate that parses structurally but lies out of range
// fails immediately rather than being retried as a grid reference.
func ParseAny(text string) (Input, error) {
	point, err := ParseCoordinate(text)
	if err == nil {
		return Input{Kind: KindCoordinate, Point: point}, nil
	}
	if errors.Is(err, ErrOutOfRange) {
		return Input{}, err
	}

	ref, gridErr := ParseGridReference(text)
	if gridErr == nil {
		return Input{Kind: KindGrid, Grid: ref}, nil
	}

	return Input{}, fmt.Errorf("input %q is neither a coordinate nor a grid reference: %w", text, ErrInvalidFormat)
}
