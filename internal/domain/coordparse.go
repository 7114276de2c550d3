package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ddShorthandRe matches two bare signed decimals separated by a single
	// comma, semicolon, or whitespace: "22.3193, 114.1694" or "-22.3 114.2".
	ddShorthandRe = regexp.MustCompile(`^(-?\d+\.?\d*)\s*[,;\s]\s*(-?\d+\.?\d*)$`)

	// symbolReplacer turns degree/minute/second symbols into token separators.
	symbolReplacer = strings.NewReplacer("°", " ", "'", " ", "′", " ", `"`, " ", "″", " ")
)

// ParseCoordinate converts a free-form coordinate string into a GeoPoint.
// It accepts DMS, degrees/decimal-minutes, and decimal-degree notations,
// with or without °/'/" symbols, with hemisphere letters as prefix or
// suffix, or with signed decimals and no letters at all.
//
// Attempts are ordered: split the text into latitude and longitude halves,
// parse each half as up-to-three numeric tokens with an optional hemisphere
// letter, and fall back to a plain decimal-degree pair when the structured
// parse fails. Out-of-range values fail with ErrOutOfRange; anything the
// parser cannot interpret fails with ErrInvalidFormat.
func ParseCoordinate(text string) (GeoPoint, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(text))
	if cleaned == "" {
		return GeoPoint{}, fmt.Errorf("empty input: %w", ErrInvalidFormat)
	}

	if latHalf, lonHalf, ok := splitHalves(cleaned); ok {
		lat, latErr := parseHalf(latHalf, "N", "S")
		lon, lonErr := parseHalf(lonHalf, "E", "W")
		if latErr == nil && lonErr == nil {
			// Structured parse succeeded; a range violation here is final.
			return NewGeoPoint(lat, lon)
		}
	}

	if m := ddShorthandRe.FindStringSubmatch(cleaned); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lon, lonErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lonErr == nil {
			return NewGeoPoint(lat, lon)
		}
	}

	return GeoPoint{}, fmt.Errorf("parse coordinate %q: %w", text, ErrInvalidFormat)
}

// splitHalves divides the input into a latitude half and a longitude half.
// A single comma or semicolon wins; otherwise, when both an N/S and an E/W
// marker are present, the split lands where the longitude section begins:
// at the E/W letter for prefix notation ("N22 18.5 E114 12.75"), or right
// after the N/S letter for suffix notation ("22 18 30 N 114 12 45 E").
func splitHalves(text string) (string, string, bool) {
	if strings.Count(text, ",")+strings.Count(text, ";") == 1 {
		i := strings.IndexAny(text, ",;")
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:]), true
	}

	iNS := strings.IndexAny(text, "NS")
	iEW := strings.IndexAny(text, "EW")
	if iNS < 0 || iEW < 0 || iEW < iNS {
		return "", "", false
	}
	if text[0] == 'N' || text[0] == 'S' {
		return strings.TrimSpace(text[:iEW]), strings.TrimSpace(text[iEW:]), true
	}
	return strings.TrimSpace(text[:iNS+1]), strings.TrimSpace(text[iNS+1:]), true
}

// parseHalf extracts an optional hemisphere letter, strips DMS symbols, and
// composes up to three numeric tokens (degrees, minutes, seconds) into a
// decimal value. The hemisphere letter is authoritative: a conflicting
// numeric sign is ignored silently. Without a letter, a leading minus on
// the degrees token selects the negative hemisphere.
func parseHalf(half, pos, neg string) (float64, error) {
	hemi := ""
	if strings.Contains(half, pos) {
		hemi = pos
	} else if strings.Contains(half, neg) {
		hemi = neg
	}
	half = strings.ReplaceAll(half, pos, "")
	half = strings.ReplaceAll(half, neg, "")

	fields := strings.Fields(symbolReplacer.Replace(half))
	if len(fields) == 0 {
		return 0, fmt.Errorf("no numeric tokens: %w", ErrInvalidFormat)
	}

	deg, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("degrees %q: %w", fields[0], ErrInvalidFormat)
	}
	negSign := strings.HasPrefix(fields[0], "-")

	var min, sec float64
	if len(fields) >= 2 {
		if min, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return 0, fmt.Errorf("minutes %q: %w", fields[1], ErrInvalidFormat)
		}
	}
	if len(fields) >= 3 {
		if sec, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return 0, fmt.Errorf("seconds %q: %w", fields[2], ErrInvalidFormat)
		}
	}

	value := absFloat(deg) + min/60 + sec/3600
	switch {
	case hemi == neg:
		value = -value
	case hemi == pos:
		// Letter wins over any numeric sign.
	case negSign:
		value = -value
	}
	return value, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
