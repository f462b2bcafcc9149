// Package streamre matches patterns against character streams without
// backtracking. A pattern is compiled once into a node graph; matching
// reads one code point at a time from a Source and never rereads input, so
// it works on streams that cannot be buffered whole.
//
// The pattern language has literal characters, escapes (\r \n \t \uXXXX,
// and \ before any other character to take it literally), bracket classes
// with ranges and ^ negation, groups with | alternation, and the
// quantifiers ? * + {n} {n,} {,m} {n,m}. There are no anchors and no
// capture extraction; . is a literal dot.
package streamre

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pvto/streamre/internal/logging"
	"github.com/pvto/streamre/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "streamre")

// Regexp is a compiled pattern. It is immutable and safe for concurrent use;
// each read keeps its own lane state.
type Regexp struct {
	expr string
	prog *Prog
}

// Match is a token read by ReadMatch.
type Match struct {
	Text string
	// Branch is the index of the top-level alternative that matched. When
	// several match the same text the lowest index wins.
	Branch int
	// Line and Column locate the first code point of Text.
	Line, Column int
}

func Compile(expr string) (*Regexp, error) {
	parser := NewParser(expr)
	nodes, err := parser.parse()
	if err != nil {
		return nil, err
	}

	compiler := NewCompiler()
	prog, err := compiler.compile(nodes, parser.classes)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		logfields.Pattern: expr,
		"nodes":           len(prog.nodes),
		"classes":         prog.NumClasses,
	}).Debug("Compiled pattern")

	return &Regexp{
		expr: expr,
		prog: prog,
	}, nil
}

func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("streamre: Compile(%q): %v", expr, err))
	}
	return re
}

// String returns the source text used to compile the pattern.
func (re *Regexp) String() string {
	return re.expr
}

// NodeCount returns the number of nodes in the compiled graph, including
// the root group.
func (re *Regexp) NodeCount() int {
	return len(re.prog.nodes)
}

// ClassCount returns the number of distinct character classes. Classes that
// accept the same code points by construction are stored once. Single
// character atoms count too: "abc" has three classes, "[abc][a-c]" one.
func (re *Regexp) ClassCount() int {
	return re.prog.NumClasses
}

// Dump writes the compiled node graph to w.
func (re *Regexp) Dump(w io.Writer) error {
	return re.prog.Dump(w)
}

// Matches reports whether the whole remaining input of src matches. It
// stops at the first code point that no lane accepts and pushes that code
// point back.
func (re *Regexp) Matches(src Source) (bool, error) {
	vm := NewVM(re.prog)
	for {
		vm.expand()
		r, err := src.ReadRune()
		if err == io.EOF {
			return vm.accept, nil
		} else if err != nil {
			return false, err
		}
		if !vm.advance(r) {
			return false, src.UnreadRune(r)
		}
	}
}

// ReadItem reads the longest token the pattern accepts at the current
// position. ok is false when no token can be read here; that is a normal
// outcome, and err is only set when the source fails.
//
// Reading is eager and never backtracks. The code point that ends a token
// is pushed back, but code points consumed by a failed attempt stay
// consumed; callers that need to retry wrap the attempt in Mark and Rewind.
func (re *Regexp) ReadItem(src Source) (string, bool, error) {
	m, ok, err := re.ReadMatch(src)
	return m.Text, ok, err
}

// ReadMatch is like ReadItem but also reports where the token started and
// which top-level alternative produced it.
func (re *Regexp) ReadMatch(src Source) (Match, bool, error) {
	vm := NewVM(re.prog)
	line, col := src.Line(), src.Column()
	var sb strings.Builder
	for {
		vm.expand()
		if len(vm.offers) == 0 {
			// Nothing can extend the token; do not read ahead.
			break
		}
		r, err := src.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return Match{}, false, err
		}
		if !vm.advance(r) {
			if err := src.UnreadRune(r); err != nil {
				return Match{}, false, err
			}
			break
		}
		sb.WriteRune(r)
	}
	if !vm.accept || sb.Len() == 0 {
		return Match{}, false, nil
	}
	return Match{
		Text:   sb.String(),
		Branch: vm.branch,
		Line:   line,
		Column: col,
	}, true, nil
}
