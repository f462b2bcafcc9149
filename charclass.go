package streamre

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
)

// classWindow is the number of code points covered by the class bitsets.
// Ranges reaching past it are kept as range checks.
const classWindow = 2048

// noRune marks a CharClass that is a set rather than a single rune.
const noRune rune = -1

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	Lo, Hi rune
}

func (r RuneRange) contains(x rune) bool {
	return r.Lo <= x && x <= r.Hi
}

func (r RuneRange) String() string {
	return fmt.Sprintf("%q-%q", r.Lo, r.Hi)
}

// CharClass decides whether a code point is accepted by one atom of a
// pattern. It is either a single rune or a set built from runes and ranges,
// some of them excluded.
type CharClass struct {
	r rune

	in   *bitset.BitSet
	inr  []RuneRange
	out  *bitset.BitSet
	outr []RuneRange
}

func newRuneClass(r rune) *CharClass {
	return &CharClass{r: r}
}

func newSetClass() *CharClass {
	return &CharClass{r: noRune}
}

func (c *CharClass) addRune(x rune, negated bool) {
	if negated {
		if x >= 0 && x < classWindow {
			if c.out == nil {
				c.out = bitset.New(classWindow)
			}
			c.out.Set(uint(x))
		} else {
			c.outr = append(c.outr, RuneRange{x, x})
		}
		return
	}
	if x >= 0 && x < classWindow {
		if c.in == nil {
			c.in = bitset.New(classWindow)
		}
		c.in.Set(uint(x))
	} else {
		c.inr = append(c.inr, RuneRange{x, x})
	}
}

func (c *CharClass) addRange(lo, hi rune, negated bool) {
	if negated {
		c.outr = append(c.outr, RuneRange{lo, hi})
	} else {
		c.inr = append(c.inr, RuneRange{lo, hi})
	}
}

// simplify folds every range lying inside the window into the inclusion
// bitset and applies the exclusions to it. Afterwards the bitset is
// authoritative inside the window.
func (c *CharClass) simplify() {
	if c.r != noRune {
		return
	}
	if c.in == nil && len(c.inr) > 0 {
		c.in = bitset.New(classWindow)
	}
	if c.in != nil {
		c.inr = foldRanges(c.inr, c.in, true)
		c.outr = foldRanges(c.outr, c.in, false)
		if c.out != nil {
			c.in.InPlaceDifference(c.out)
			c.out = nil
		}
	}
	if c.out != nil && c.out.None() {
		c.out = nil
	}
	if len(c.inr) == 0 {
		c.inr = nil
	}
	if len(c.outr) == 0 {
		c.outr = nil
	}
}

// foldRanges sets (or clears) the window part of every range in bs and
// returns the ranges extending past the window.
func foldRanges(ranges []RuneRange, bs *bitset.BitSet, set bool) []RuneRange {
	var rest []RuneRange
	for _, r := range ranges {
		lo, hi := r.Lo, r.Hi
		if lo < 0 {
			lo = 0
		}
		if hi >= classWindow {
			hi = classWindow - 1
		}
		for x := lo; x <= hi; x++ {
			if set {
				bs.Set(uint(x))
			} else {
				bs.Clear(uint(x))
			}
		}
		if r.Hi >= classWindow {
			rest = append(rest, r)
		}
	}
	return rest
}

// Contains reports whether x is accepted.
func (c *CharClass) Contains(x rune) bool {
	if c.r != noRune {
		return c.r == x
	}
	if inRanges(c.outr, x) {
		return false
	}
	inWindow := x >= 0 && x < classWindow
	if c.out != nil && inWindow && c.out.Test(uint(x)) {
		return false
	}
	if c.in == nil && c.inr == nil {
		return true
	}
	if c.in != nil && inWindow {
		return c.in.Test(uint(x))
	}
	return inRanges(c.inr, x)
}

func inRanges(ranges []RuneRange, x rune) bool {
	for _, r := range ranges {
		if r.contains(x) {
			return true
		}
	}
	return false
}

// Equal reports whether c and o accept the same code points by
// construction: same single rune, or same normalized sets and ranges.
func (c *CharClass) Equal(o *CharClass) bool {
	if c.r != noRune || o.r != noRune {
		return c.r == o.r
	}
	return bitsEqual(c.in, o.in) && bitsEqual(c.out, o.out) &&
		rangesEqual(c.inr, o.inr) && rangesEqual(c.outr, o.outr)
}

func bitsEqual(a, b *bitset.BitSet) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func rangesEqual(a, b []RuneRange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *CharClass) hash() uint64 {
	if c.r != noRune {
		return uint64(c.r)
	}
	d := xxhash.New()
	var buf [8]byte
	writeBits := func(tag byte, bs *bitset.BitSet) {
		_, _ = d.Write([]byte{tag})
		if bs == nil {
			return
		}
		for _, w := range bs.Bytes() {
			binary.LittleEndian.PutUint64(buf[:], w)
			_, _ = d.Write(buf[:])
		}
	}
	writeRanges := func(tag byte, rs []RuneRange) {
		_, _ = d.Write([]byte{tag})
		for _, r := range rs {
			binary.LittleEndian.PutUint32(buf[:4], uint32(r.Lo))
			binary.LittleEndian.PutUint32(buf[4:], uint32(r.Hi))
			_, _ = d.Write(buf[:])
		}
	}
	writeBits('i', c.in)
	writeBits('o', c.out)
	writeRanges('I', c.inr)
	writeRanges('O', c.outr)
	return d.Sum64()
}

func (c *CharClass) String() string {
	if c.r != noRune {
		return fmt.Sprintf("%q", c.r)
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if c.in != nil {
		writeSpans(&sb, c.in)
	}
	for _, r := range c.inr {
		sb.WriteString(r.String())
	}
	if c.out != nil || c.outr != nil {
		sb.WriteByte('^')
		if c.out != nil {
			writeSpans(&sb, c.out)
		}
		for _, r := range c.outr {
			sb.WriteString(r.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// writeSpans prints the set bits of bs as runs.
func writeSpans(sb *strings.Builder, bs *bitset.BitSet) {
	i, ok := bs.NextSet(0)
	for ok {
		j := i
		for bs.Test(j + 1) {
			j++
		}
		if i == j {
			fmt.Fprintf(sb, "%q", rune(i))
		} else {
			fmt.Fprintf(sb, "%q-%q", rune(i), rune(j))
		}
		i, ok = bs.NextSet(j + 1)
	}
}

// classCache shares one instance between structurally equal classes of a
// compiled pattern.
type classCache struct {
	buckets map[uint64][]*CharClass
	n       int
}

func newClassCache() *classCache {
	return &classCache{buckets: make(map[uint64][]*CharClass)}
}

// storeOrGet returns the cached class equal to c, storing c if there is none.
func (cc *classCache) storeOrGet(c *CharClass) *CharClass {
	h := c.hash()
	for _, old := range cc.buckets[h] {
		if old.Equal(c) {
			return old
		}
	}
	cc.buckets[h] = append(cc.buckets[h], c)
	cc.n++
	return c
}

// Len returns the number of distinct classes stored.
func (cc *classCache) Len() int {
	return cc.n
}
