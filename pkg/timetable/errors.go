package timetable

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkFailure covers transport errors and non-success responses.
	ErrNetworkFailure = errors.New("timetable request failed")

	// ErrMalformedUpstreamData means the response body was not JSON.
	ErrMalformedUpstreamData = errors.New("malformed timetable response")
)

// StatusError is returned when the timetable API answers with a non-200
// status, typically because the session has expired.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from timetable", e.StatusCode)
}

// Is makes StatusError match ErrNetworkFailure.
func (e *StatusError) Is(target error) bool {
	return target == ErrNetworkFailure
}
