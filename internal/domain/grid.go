package domain

import (
	"fmt"
	"strings"
)

// gridSquares are the two-letter 100km square identifiers covering the
// Hong Kong 1980 grid. JK/KK sit in UTM zone 50Q, GE/HE in 49Q.
var gridSquares = map[string]string{
	"GE": "49Q",
	"HE": "49Q",
	"JK": "50Q",
	"KK": "50Q",
}

// GridReference is a validated Hong Kong grid-square reference: a square
// identifier plus an even-length digit string that splits evenly into
// easting and northing halves.
type GridReference struct {
	SquareID string `json:"square_id"`
	Digits   string `json:"digits"`
}

// ParseGridReference validates and normalizes a grid reference string.
// All whitespace is stripped, so "KK369077", "KK 369077", and "KK 369 077"
// normalize identically. Failures are reported as ErrInvalidPrefix,
// ErrInvalidDigits, or ErrOddDigitCount.
func ParseGridReference(text string) (GridReference, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(text), ""))

	if len(cleaned) < 2 {
		return GridReference{}, fmt.Errorf("grid reference %q: %w", text, ErrInvalidPrefix)
	}
	prefix := cleaned[:2]
	if _, ok := gridSquares[prefix]; !ok {
		return GridReference{}, fmt.Errorf("grid reference %q: %w", text, ErrInvalidPrefix)
	}

	digits := cleaned[2:]
	if digits == "" {
		return GridReference{}, fmt.Errorf("grid reference %q: %w", text, ErrInvalidDigits)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return GridReference{}, fmt.Errorf("grid reference %q: %w", text, ErrInvalidDigits)
		}
	}
	if len(digits)%2 != 0 {
		return GridReference{}, fmt.Errorf("grid reference %q has %d digits: %w", text, len(digits), ErrOddDigitCount)
	}

	return GridReference{SquareID: prefix, Digits: digits}, nil
}

// Easting is the first half of the digit string.
func (g GridReference) Easting() string {
	return g.Digits[:len(g.Digits)/2]
}

// Northing is the second half of the digit string.
func (g GridReference) Northing() string {
	return g.Digits[len(g.Digits)/2:]
}

// UTMZone returns the UTM zone identifier for the square: "50Q" for JK/KK,
// "49Q" for GE/HE.
func (g GridReference) UTMZone() string {
	return gridSquares[g.SquareID]
}

// String is the canonical textual form: the square identifier immediately
// followed by the original digit string, no spaces.
func (g GridReference) String() string {
	return g.SquareID + g.Digits
}

// GridResult is a grid reference as returned by the transform service:
// a UTM reference zone plus easting/northing strings.
type GridResult struct {
	Zone     string `json:"zone"`
	Easting  string `json:"easting"`
	Northing string `json:"northing"`
}

// String renders the result the way the upstream service formats grid
// references: zone, a space, then easting and northing joined.
func (g GridResult) String() string {
	return fmt.Sprintf("%s %s%s", g.Zone, g.Easting, g.Northing)
}
