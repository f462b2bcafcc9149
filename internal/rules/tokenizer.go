package rules

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pvto/streamre"
	"github.com/pvto/streamre/internal/logging/logfields"
	"github.com/pvto/streamre/stream"
)

// ErrNoMatch is reported, wrapped in a *stream.PositionError, when no rule
// reads a token at the current position.
var ErrNoMatch = errors.New("no rule matches")

// Input is the source a Tokenizer reads from. *stream.Cursor implements it.
type Input interface {
	streamre.Source
	SkipDelimiters() error
}

// Tokenizer splits an Input into rule tokens.
type Tokenizer struct {
	m          *streamre.Mapper[Rule]
	in         Input
	skipDelims bool
}

// NewTokenizer returns a tokenizer reading in with the rules of f. With
// skipDelims set, spaces, tabs, line breaks and commas between tokens are
// dropped before any rule is tried.
func NewTokenizer(f *File, in Input, skipDelims bool) (*Tokenizer, error) {
	m, err := f.Mapper()
	if err != nil {
		return nil, err
	}
	return &Tokenizer{m: m, in: in, skipDelims: skipDelims}, nil
}

// Next returns the next token of a rule that is not a skip rule. It returns
// io.EOF at the end of input.
//
// The input is marked before each token, so a caller tokenizing an endless
// stream holds at most one token in memory.
func (t *Tokenizer) Next() (streamre.Token[Rule], error) {
	for {
		if t.skipDelims {
			if err := t.in.SkipDelimiters(); err != nil {
				return streamre.Token[Rule]{}, err
			}
		}
		if _, err := t.in.PeekRune(); err != nil {
			return streamre.Token[Rule]{}, err
		}

		t.in.Mark()
		line, col := t.in.Line(), t.in.Column()
		tok, ok, err := t.m.ReadToken(t.in)
		if err != nil {
			return tok, err
		}
		if !ok {
			return tok, &stream.PositionError{Line: line, Column: col, Err: ErrNoMatch}
		}
		if tok.Value.Skip {
			continue
		}
		log.WithFields(logrus.Fields{
			logfields.Rule:   tok.Value.Name,
			logfields.Token:  tok.Text,
			logfields.Line:   tok.Line,
			logfields.Column: tok.Column,
		}).Debug("Read token")
		return tok, nil
	}
}

// All reads tokens until the end of input.
func (t *Tokenizer) All() ([]streamre.Token[Rule], error) {
	var out []streamre.Token[Rule]
	for {
		tok, err := t.Next()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
}
