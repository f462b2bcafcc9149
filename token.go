package streamre

import "fmt"

// Token is a piece of input read by a Mapper, with the value mapped to the
// fragment that matched it.
type Token[T any] struct {
	Text  string
	Value T
	// Line and Column locate the first code point of Text.
	Line, Column int
}

func (t Token[T]) String() string {
	return fmt.Sprintf("%d:%d %q (%v)", t.Line, t.Column, t.Text, t.Value)
}
