// Package scan reads common values (numbers, quoted strings, lines and
// delimited spans) from a streamre.Source.
//
// Every reader here goes through ReadRune and UnreadRune only, so the one
// code point pushback of the source is respected. ReadNumber and ReadInt
// take a mark and rewind to it when no number starts at the current
// position.
package scan

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/pvto/streamre"
)

var (
	numberRe = streamre.MustCompile(`[+\-]?[0-9]+(\.[0-9]+)?([eE][+\-]?[0-9]+)?`)
	intRe    = streamre.MustCompile(`[+\-]?[0-9]+`)
)

func errorf(src streamre.Source, err error, msg string) error {
	return &ParseError{Line: src.Line(), Column: src.Column(), Msg: msg, Err: err}
}

// ReadChars reads up to n code points. It returns fewer only when the input
// ends first.
func ReadChars(src streamre.Source, n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, err := src.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// ReadSpan skips input up to and including open, then returns everything up
// to close. close is consumed but not returned.
func ReadSpan(src streamre.Source, open, close rune) (string, error) {
	for {
		r, err := src.ReadRune()
		if err == io.EOF {
			return "", errorf(src, io.ErrUnexpectedEOF, "missing "+strconv.QuoteRune(open))
		} else if err != nil {
			return "", err
		}
		if r == open {
			break
		}
	}
	var sb strings.Builder
	for {
		r, err := src.ReadRune()
		if err == io.EOF {
			return sb.String(), errorf(src, io.ErrUnexpectedEOF, "unterminated span, missing "+strconv.QuoteRune(close))
		} else if err != nil {
			return sb.String(), err
		}
		if r == close {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// ReadLine returns the text up to the next line feed, which is consumed.
// Carriage returns are dropped. An unterminated last line is returned as
// is; io.EOF is returned only when there is nothing left to read.
func ReadLine(src streamre.Source) (string, error) {
	var sb strings.Builder
	read := false
	for {
		r, err := src.ReadRune()
		if err == io.EOF {
			if !read {
				return "", io.EOF
			}
			return sb.String(), nil
		} else if err != nil {
			return sb.String(), err
		}
		read = true
		switch r {
		case '\n':
			return sb.String(), nil
		case '\r':
		default:
			sb.WriteRune(r)
		}
	}
}

// readToken reads a token of re. When there is none the source is rewound to
// where reading started.
func readToken(src streamre.Source, re *streamre.Regexp, what string) (string, error) {
	line, col := src.Line(), src.Column()
	src.Mark()
	tok, ok, err := re.ReadItem(src)
	if err != nil {
		return "", err
	}
	if !ok {
		src.Rewind()
		return "", &ParseError{Line: line, Column: col, Msg: "expected " + what}
	}
	return tok, nil
}

// ReadNumber reads a decimal number with optional sign, fraction and
// exponent, and returns its value with the text it was read from.
func ReadNumber(src streamre.Source) (float64, string, error) {
	tok, err := readToken(src, numberRe, "number")
	if err != nil {
		return 0, "", err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, tok, errorf(src, err, "invalid number "+strconv.Quote(tok))
	}
	return v, tok, nil
}

// ReadInt reads a decimal integer with an optional sign.
func ReadInt(src streamre.Source) (int64, error) {
	tok, err := readToken(src, intRe, "integer")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errorf(src, err, "invalid integer "+strconv.Quote(tok))
	}
	return v, nil
}

// ReadQuoted reads a double quoted string and returns its unescaped
// content. The escapes \" \\ \n \r \t and \uXXXX are recognized.
func ReadQuoted(src streamre.Source) (string, error) {
	r, err := src.ReadRune()
	if err == io.EOF {
		return "", errorf(src, io.ErrUnexpectedEOF, "expected quoted string")
	} else if err != nil {
		return "", err
	}
	if r != '"' {
		if err := src.UnreadRune(r); err != nil {
			return "", err
		}
		return "", errorf(src, nil, "expected quoted string")
	}

	var sb strings.Builder
	for {
		r, err := src.ReadRune()
		if err == io.EOF {
			return sb.String(), errorf(src, io.ErrUnexpectedEOF, "unterminated string")
		} else if err != nil {
			return sb.String(), err
		}
		switch r {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, err := readEscape(src)
			if err != nil {
				return sb.String(), err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(r)
		}
	}
}

var errBadEscape = errors.New("bad escape")

func readEscape(src streamre.Source) (rune, error) {
	r, err := src.ReadRune()
	if err == io.EOF {
		return 0, errorf(src, io.ErrUnexpectedEOF, "unterminated string")
	} else if err != nil {
		return 0, err
	}
	switch r {
	case '"', '\\':
		return r, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		hex, err := ReadChars(src, 4)
		if err != nil {
			return 0, err
		}
		v, perr := strconv.ParseUint(hex, 16, 32)
		if len(hex) != 4 || perr != nil {
			return 0, errorf(src, errBadEscape, "malformed \\u escape")
		}
		return rune(v), nil
	}
	return 0, errorf(src, errBadEscape, "unknown escape \\"+string(r))
}
