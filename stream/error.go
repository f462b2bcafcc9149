package stream

import (
	"errors"
	"fmt"
)

// ErrPushbackOverflow is returned when a second code point is pushed back
// before the first one has been read again.
var ErrPushbackOverflow = errors.New("pushback buffer overflow")

// PositionError reports a failure together with the cursor position at
// which it happened.
type PositionError struct {
	Line   int
	Column int
	Err    error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v at line %d:%d", e.Err, e.Line, e.Column)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}
