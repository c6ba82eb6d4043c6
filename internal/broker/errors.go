package broker

import "errors"

// ErrHandlerPanic matches any PanicError via errors.Is.
var ErrHandlerPanic = errors.New("broadcast handler panicked")

// PanicError wraps a recovered panic from a broadcast handler.
type PanicError struct {
	// Participant is the name of the handler's owner.
	Participant string

	// Channel is the channel the broadcast was sent on.
	Channel string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "broadcast handler panic for participant " + e.Participant + " on channel " + e.Channel
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
