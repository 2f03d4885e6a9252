package render

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned from Run when the progress reporter
// interrupts processing. The track list is left untouched.
var ErrCancelled = errors.New("render: cancelled")

// FatalError marks a failure that must unwind past the engine to an
// application-level handler. The engine still discards all working
// copies before returning it. Every other error coming out of a unit
// is converted into a recoverable run failure.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("render: fatal: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err so that the engine propagates it as-is instead of
// converting it into a run failure.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err carries the fatal marker.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
