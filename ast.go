package streamre

import (
	"fmt"
	"math"
)

// Unbounded is the max repetition count of *, + and {n,}.
const Unbounded = math.MaxInt

// noNode marks an absent link in the node arena.
const noNode = -1

// node is one element of a compiled pattern. Nodes live in Prog.nodes and
// refer to each other by index.
//
// next and alts own the nodes they point to. parent and group are lookups
// only: parent is the node the compiler attached this one to (the preceding
// sibling, or the enclosing group for a branch head) and group is the
// nearest enclosing group.
type node struct {
	class   *CharClass // nil for groups
	isGroup bool

	min, max int

	next int
	alts []int

	parent int
	group  int

	offset int // byte offset in the pattern
	depth  int // distance from the root along parent links
	branch int // index of the root alternative, -1 for the root

	// possiblyEnding is set when a match may end successfully after this
	// node without any further mandatory atom. It is informational: Dump
	// shows it, but the VM decides acceptance from its own lane closure.
	possiblyEnding bool
}

func (n *node) String() string {
	var s string
	if n.isGroup {
		s = "G"
	} else {
		s = n.class.String()
	}
	switch {
	case n.min == 1 && n.max == 1:
	case n.max == Unbounded:
		s += fmt.Sprintf(" {%d,}", n.min)
	default:
		s += fmt.Sprintf(" {%d,%d}", n.min, n.max)
	}
	if n.possiblyEnding {
		s += " E"
	}
	return s
}
