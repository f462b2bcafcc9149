package streamre

import "fmt"

// SyntaxError describes a malformed pattern.
type SyntaxError struct {
	Pattern string
	Offset  int // byte offset of the offending construct
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q, starting with %q",
		e.Msg, e.Offset, e.Pattern, e.Pattern[e.Offset:])
}
