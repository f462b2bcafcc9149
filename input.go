package streamre

import (
	"io"
	"strings"

	"github.com/pvto/streamre/stream"
)

// Source is the character stream a pattern reads from. ReadRune returns
// io.EOF at the end of input. UnreadRune needs to hold one code point only;
// Mark and Rewind bracket a region that can be read again.
//
// *stream.Cursor implements Source.
type Source interface {
	ReadRune() (rune, error)
	UnreadRune(r rune) error
	PeekRune() (rune, error)
	Mark()
	Rewind() int
	Line() int
	Column() int
}

var _ Source = (*stream.Cursor)(nil)

// NewReaderSource returns a Source decoding r.
func NewReaderSource(r io.Reader) *stream.Cursor {
	return stream.NewReader(r)
}

// NewStringSource returns a Source over s.
func NewStringSource(s string) *stream.Cursor {
	return stream.NewReader(strings.NewReader(s))
}
