package streamre

import (
	"bytes"
	"io"
)

// MatchString reports whether s as a whole matches the pattern.
func (re *Regexp) MatchString(s string) bool {
	ok, _ := re.Matches(NewStringSource(s))
	return ok
}

// Match reports whether b as a whole matches the pattern. Bytes that are
// not valid UTF-8 are read as Latin-1.
func (re *Regexp) Match(b []byte) bool {
	ok, _ := re.Matches(NewReaderSource(bytes.NewReader(b)))
	return ok
}

// MatchReader reports whether everything read from r matches the pattern.
func (re *Regexp) MatchReader(r io.Reader) (bool, error) {
	return re.Matches(NewReaderSource(r))
}

// FindString returns the token ReadItem reads from the start of s, and
// whether there was one.
func (re *Regexp) FindString(s string) (string, bool) {
	tok, ok, _ := re.ReadItem(NewStringSource(s))
	return tok, ok
}
