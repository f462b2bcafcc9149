package streamre

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pvto/streamre/internal/logging/logfields"
)

var (
	// ErrNoFragments is returned by Build when nothing was mapped.
	ErrNoFragments = errors.New("no fragments mapped")
	// ErrEmptyFragment is returned by Build for a fragment with no text.
	ErrEmptyFragment = errors.New("empty fragment")
)

// MapperBuilder collects pattern fragments and the values they map to.
type MapperBuilder[T any] struct {
	fragments []string
	values    []T
}

func NewMapper[T any]() *MapperBuilder[T] {
	return &MapperBuilder[T]{}
}

// Map adds a fragment. Fragments are tried together; when several read the
// same longest token, the one mapped first wins.
func (b *MapperBuilder[T]) Map(fragment string, v T) *MapperBuilder[T] {
	b.fragments = append(b.fragments, fragment)
	b.values = append(b.values, v)
	return b
}

// Build compiles the fragments into one pattern whose top-level
// alternatives are the fragments in order.
func (b *MapperBuilder[T]) Build() (*Mapper[T], error) {
	if len(b.fragments) == 0 {
		return nil, ErrNoFragments
	}
	parts := make([]string, len(b.fragments))
	for i, f := range b.fragments {
		if f == "" {
			return nil, fmt.Errorf("fragment %d: %w", i, ErrEmptyFragment)
		}
		// Each fragment must compile on its own, so none can unbalance the
		// combined pattern.
		if _, err := Compile(f); err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		parts[i] = "(" + f + ")"
	}
	re, err := Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		logfields.Pattern: re.String(),
		"fragments":       len(parts),
	}).Debug("Built mapper")

	values := make([]T, len(b.values))
	copy(values, b.values)
	return &Mapper[T]{re: re, values: values}, nil
}

// Mapper reads tokens and tells which fragment each one matched.
type Mapper[T any] struct {
	re     *Regexp
	values []T
}

// Regexp returns the combined pattern.
func (m *Mapper[T]) Regexp() *Regexp {
	return m.re
}

// ReadNext reads the next token and returns it with its value. ok is false
// when no fragment accepts the input at the current position.
func (m *Mapper[T]) ReadNext(src Source) (text string, v T, ok bool, err error) {
	tok, ok, err := m.ReadToken(src)
	return tok.Text, tok.Value, ok, err
}

// ReadToken is like ReadNext but also reports where the token started.
func (m *Mapper[T]) ReadToken(src Source) (Token[T], bool, error) {
	match, ok, err := m.re.ReadMatch(src)
	if err != nil || !ok {
		return Token[T]{}, false, err
	}
	return Token[T]{
		Text:   match.Text,
		Value:  m.values[match.Branch],
		Line:   match.Line,
		Column: match.Column,
	}, true, nil
}
