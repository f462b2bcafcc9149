package scan

import "fmt"

// ParseError is a failure to read a value, located at the position of the
// source when reading stopped.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at line %d:%d: %v", e.Msg, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s at line %d:%d", e.Msg, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
