package urlengine

import (
	"errors"
	"fmt"
)

// ErrAbsent matches every AbsentError via errors.Is.
var ErrAbsent = errors.New("component not present")

var (
	// ErrMalformedInput indicates text that cannot be parsed as a URL.
	ErrMalformedInput = errors.New("malformed input to a URL function")

	// ErrBadScheme indicates a scheme with characters outside the RFC 3986 set.
	ErrBadScheme = errors.New("bad scheme")

	// ErrUnsupportedScheme indicates a well-formed scheme the engine does not
	// know, used without NonSupportScheme.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrBadPort indicates a port that is not a decimal number in 0-65535.
	ErrBadPort = errors.New("port number was not a decimal number between 0 and 65535")

	// ErrBadHostname indicates a host with characters that cannot appear in one.
	ErrBadHostname = errors.New("bad hostname")

	// ErrBadDecode indicates percent-encoding that cannot be decoded.
	ErrBadDecode = errors.New("URL decode error, most likely because of rubbish in the input")

	// ErrInsufficient indicates a handle without enough components to form a URL.
	ErrInsufficient = errors.New("not enough components for a URL")

	// ErrClosed is returned by every method of a closed Handle.
	ErrClosed = errors.New("URL handle is closed")
)

// AbsentError reports a component that is not set on a handle.
//
// Absence is an ordinary condition (most URLs carry no fragment), so callers
// usually test for it with IsAbsent and move on.
type AbsentError struct {
	Part Part
}

func (e *AbsentError) Error() string {
	return fmt.Sprintf("no %s", e.Part)
}

// Is makes errors.Is(err, ErrAbsent) true for every AbsentError.
func (e *AbsentError) Is(target error) bool {
	return target == ErrAbsent
}

// IsAbsent reports whether err means "component not present".
func IsAbsent(err error) bool {
	return errors.Is(err, ErrAbsent)
}
