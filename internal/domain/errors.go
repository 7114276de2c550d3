package domain

import (
	"errors"
	"fmt"
)

// Parse failures. All malformed input is reported through these sentinels;
// the parsers never panic.
var (
	ErrInvalidFormat = errors.New("invalid coordinate format")
	ErrOutOfRange    = errors.New("latitude or longitude out of range")
	ErrInvalidPrefix = errors.New("grid square prefix must be one of GE, HE, JK, KK")
	ErrInvalidDigits = errors.New("grid reference must be digits after the square prefix")
	ErrOddDigitCount = errors.New("grid digits must have an even count to split into easting and northing")
)

// Gateway failures. The transform adapter wraps low-level transport and
// decoding errors with these so callers can distinguish them without
// depending on net/http internals.
var (
	ErrNetwork         = errors.New("transform service unreachable")
	ErrInvalidResponse = errors.New("transform service returned an unexpected response")
)

// RemoteError is an error reported by the transform service itself, carried
// in the ErrorCode/ErrorMsg fields of an otherwise well-formed response.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("transform service error %s", e.Code)
	}
	return fmt.Sprintf("transform service error %s: %s", e.Code, e.Message)
}
