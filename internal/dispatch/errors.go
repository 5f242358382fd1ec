package dispatch

import (
	"errors"
	"fmt"
)

const (
	// FailureMessage is the only text a caller ever sees for a remote failure.
	FailureMessage = "Failed to get AI response. Please check your API key and try again."
	// EmptyReply stands in for a completion without content.
	EmptyReply = "Sorry, I could not generate a response."
)

var ErrDispatch = errors.New("dispatch failed")

// DispatchError is returned for every remote-path failure. StatusCode is 0
// when no HTTP response was received.
type DispatchError struct {
	StatusCode int
	cause      error
}

func (e *DispatchError) Error() string { return FailureMessage }

func (e *DispatchError) Is(target error) bool { return target == ErrDispatch }

// Detail describes the underlying failure for logs.
func (e *DispatchError) Detail() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status %d: %v", e.StatusCode, e.cause)
	}
	return fmt.Sprint(e.cause)
}
