// Package stream provides the rewindable byte cache and the decoding cursor
// the pattern engine reads from.
package stream

import (
	"bufio"
	"io"
)

// Cache records every byte read from the underlying reader since the last
// Mark, and can replay them after Rewind as many times as needed.
//
// The buffer is unbounded. Callers are expected to Mark regularly when
// reading long streams.
type Cache struct {
	r   io.ByteReader
	buf []byte
	// pending is the number of bytes of buf still to be replayed.
	pending int
}

// NewCache wraps r. Readers that are not already an io.ByteReader get a
// bufio.Reader in between.
func NewCache(r io.Reader) *Cache {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cache{r: br}
}

// ReadByte returns the next replayed byte, or reads and records a new one.
func (c *Cache) ReadByte() (byte, error) {
	if c.pending > 0 {
		b := c.buf[len(c.buf)-c.pending]
		c.pending--
		return b, nil
	}
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.buf = append(c.buf, b)
	return b, nil
}

// Mark starts a new replayable region. If a replay is in progress, the bytes
// not replayed yet are kept and keep being replayed.
func (c *Cache) Mark() {
	if c.pending > 0 {
		n := copy(c.buf, c.buf[len(c.buf)-c.pending:])
		c.buf = c.buf[:n]
		return
	}
	c.buf = c.buf[:0]
}

// Rewind enters replay mode over everything recorded since the last Mark and
// returns the number of bytes that will be replayed.
func (c *Cache) Rewind() int {
	c.pending = len(c.buf)
	return c.pending
}

// Pending returns the number of bytes left to replay. Zero means reads go to
// the underlying reader.
func (c *Cache) Pending() int {
	return c.pending
}

// Buffered returns the size of the replayable region.
func (c *Cache) Buffered() int {
	return len(c.buf)
}
