// Package domain models WGS84 coordinates and Hong Kong 1980 grid
// references, and parses the loosely-formatted strings users type for them.
//
// # Coordinate notations
//
// Three textual notations are accepted, with or without symbols, and with
// hemisphere letters as prefix or suffix:
//
//	DMS:  22°18'30"N 114°12'45"E   or   22 18 30 N, 114 12 45 E
//	DM:   N22 18.5, E114 12.75     or   22°18.5' N, 114°12.75' E
//	DD:   22.3193, 114.1694        or   -22.3193, -114.1694
//
// The two halves are separated by a single comma or semicolon, or, when
// both hemisphere letters are present, by the boundary between the
// latitude and longitude sections. Missing minutes/seconds default to
// zero. An unsigned value with no hemisphere letter reads as N/E; a
// hemisphere letter overrides a conflicting numeric sign. Only '.' is
// accepted as the decimal separator.
//
// # Grid references
//
// A grid reference is a two-letter 100km square identifier (GE, HE, JK,
// or KK) followed by an even number of digits, which split in half into
// easting and northing. Whitespace is insignificant: "KK369077",
// "KK 369077", and "KK 369 077" are the same reference. JK/KK squares lie
// in UTM zone 50Q, GE/HE in 49Q; the transform service is addressed with
// the zone-qualified form ("50Q-KK").
//
// # Hong Kong bounds
//
// Latitude [22.15, 22.60] and longitude [113.80, 114.45] delimit the
// operational area. Points outside it still parse; the bounds check is an
// advisory surfaced to the user as a warning.
package domain
