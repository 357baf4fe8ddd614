package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing or rejected guest session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrParse indicates a response that could not be turned into entities.
	ErrParse = errors.New("unable to parse response")

	// ErrEndOfList indicates the server has no further items.
	ErrEndOfList = errors.New("reached end of the list, there are no further posts available")

	// ErrUnexpectedState indicates a completion arrived in a state that has no transition for it.
	ErrUnexpectedState = errors.New("unexpected loading state")
)

// TransportError wraps a network level failure. Its text is shown to the user as is.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StateError reports ErrUnexpectedState together with the offending state.
func StateError(s LoadingStatus, event string) error {
	return fmt.Errorf("%w: %s in state %s", ErrUnexpectedState, event, s)
}
