package stream

import (
	"io"
	"strings"
	"unicode/utf8"
)

// ColumnSentinel is the column reported after moving back across a line
// break. The true column of the previous line is not tracked.
const ColumnSentinel = 100

// Rewinder is the byte source a Cursor needs: bytes plus mark and replay.
// *Cache implements it.
type Rewinder interface {
	io.ByteReader
	Mark()
	Rewind() int
	Pending() int
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// cursorState is what Mark saves and Rewind restores.
type cursorState struct {
	pos     Position
	raw     int
	unread  rune
	pending bool
}

// Cursor decodes UTF-8 from a Rewinder, falling back to Latin-1 for
// malformed sequences. It tracks line and column, holds one pushed back
// code point, and forwards Mark/Rewind to the byte source.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	src Rewinder
	pos Position

	// raw holds a byte read ahead by the decoder, or -1.
	raw int

	unread  rune
	pending bool

	mark cursorState
}

// NewCursor returns a cursor positioned at line 1, column 1, with a mark
// taken at the start.
func NewCursor(src Rewinder) *Cursor {
	c := &Cursor{
		src: src,
		pos: Position{Line: 1, Column: 1},
		raw: -1,
	}
	c.Mark()
	return c
}

// NewReader returns a cursor over r backed by a fresh Cache.
func NewReader(r io.Reader) *Cursor {
	return NewCursor(NewCache(r))
}

// NewStringReader returns a cursor over the UTF-8 bytes of s.
func NewStringReader(s string) *Cursor {
	return NewReader(strings.NewReader(s))
}

func (c *Cursor) readRaw() (int, error) {
	if c.raw >= 0 {
		b := c.raw
		c.raw = -1
		return b, nil
	}
	b, err := c.src.ReadByte()
	if err != nil {
		return -1, err
	}
	return int(b), nil
}

func (c *Cursor) unreadRaw(b int) error {
	if c.raw >= 0 {
		return c.errorf(ErrPushbackOverflow)
	}
	c.raw = b
	return nil
}

// ReadRune returns the next code point. At end of input it returns io.EOF.
func (c *Cursor) ReadRune() (rune, error) {
	if c.pending {
		c.pending = false
		c.advance(c.unread)
		return c.unread, nil
	}
	r, err := c.decode()
	if err != nil {
		return r, err
	}
	c.advance(r)
	return r, nil
}

func (c *Cursor) decode() (rune, error) {
	x, err := c.readRaw()
	if err != nil {
		return -1, err
	}
	if x < 0xC0 {
		return rune(x), nil
	}
	ch, err := c.readRaw()
	if err == io.EOF {
		return rune(x), nil
	} else if err != nil {
		return -1, err
	}
	if ch&0xC0 != 0x80 {
		// Not UTF-8 after all; x is a Latin-1 character.
		if err := c.unreadRaw(ch); err != nil {
			return -1, err
		}
		return rune(x), nil
	}

	var r rune
	switch {
	case x&0xF8 == 0xF0:
		r = rune(x & 0x07)
		for i := 0; i < 2; i++ {
			r = r<<6 | rune(ch&0x3F)
			if ch, err = c.readRaw(); err != nil {
				return c.truncated(err)
			}
		}
	case x&0xF0 == 0xE0:
		r = rune(x&0x0F)<<6 | rune(ch&0x3F)
		if ch, err = c.readRaw(); err != nil {
			return c.truncated(err)
		}
	default:
		r = rune(x & 0x1F)
	}
	return r<<6 | rune(ch&0x3F), nil
}

func (c *Cursor) truncated(err error) (rune, error) {
	if err == io.EOF {
		return utf8.RuneError, nil
	}
	return -1, err
}

// UnreadRune pushes r back so the next ReadRune returns it. Only one code
// point can be pending at a time.
func (c *Cursor) UnreadRune(r rune) error {
	if c.pending {
		return c.errorf(ErrPushbackOverflow)
	}
	c.unread = r
	c.pending = true
	c.retreat(r)
	return nil
}

// PeekRune returns the next code point without consuming it.
func (c *Cursor) PeekRune() (rune, error) {
	if c.pending {
		return c.unread, nil
	}
	pos := c.pos
	r, err := c.ReadRune()
	c.pos = pos
	if err != nil {
		return r, err
	}
	c.unread = r
	c.pending = true
	return r, nil
}

// Mark snapshots the position and pushback state and starts a new
// replayable region in the byte source.
func (c *Cursor) Mark() {
	c.mark = cursorState{pos: c.pos, raw: c.raw, unread: c.unread, pending: c.pending}
	c.src.Mark()
}

// Rewind restores the state saved by the last Mark and returns the number of
// bytes the source will replay.
func (c *Cursor) Rewind() int {
	c.pos = c.mark.pos
	c.raw = c.mark.raw
	c.unread = c.mark.unread
	c.pending = c.mark.pending
	return c.src.Rewind()
}

// SkipDelimiters consumes spaces, tabs, line breaks and commas. The first
// other code point stays pending.
func (c *Cursor) SkipDelimiters() error {
	for {
		r, err := c.ReadRune()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		switch r {
		case ' ', '\t', '\r', '\n', ',':
			continue
		}
		return c.UnreadRune(r)
	}
}

// DrainReplay rewinds to the last mark and decodes everything read since,
// returning it as text. It is how a caller recovers the input consumed by a
// failed attempt.
func (c *Cursor) DrainReplay() (string, error) {
	var sb strings.Builder
	c.Rewind()
	for c.pending || c.raw >= 0 || c.src.Pending() > 0 {
		r, err := c.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Line returns the current 1-based line.
func (c *Cursor) Line() int { return c.pos.Line }

// Column returns the current 1-based column.
func (c *Cursor) Column() int { return c.pos.Column }

// Position returns the current line and column.
func (c *Cursor) Position() Position { return c.pos }

func (c *Cursor) advance(r rune) {
	switch r {
	case '\n':
		c.pos.Line++
		c.pos.Column = 1
	case '\r':
	default:
		c.pos.Column++
	}
}

func (c *Cursor) retreat(r rune) {
	switch r {
	case '\n':
		c.pos.Line--
		c.pos.Column = ColumnSentinel
	case '\r':
	default:
		c.pos.Column--
	}
}

func (c *Cursor) errorf(err error) error {
	return &PositionError{Line: c.pos.Line, Column: c.pos.Column, Err: err}
}
