package streamre

import (
	"fmt"
	"io"
	"strings"
)

// Prog is a compiled pattern: the node arena with its static facts.
type Prog struct {
	nodes      []node
	NumClasses int // distinct character classes
}

// depth returns the distance of node id from the root.
func (p *Prog) depth(id int) int {
	return p.nodes[id].depth
}

// ancestor returns the node on the parent chain of id that lies dist steps
// from the root, or noNode if id is closer to the root than that.
func (p *Prog) ancestor(id, dist int) int {
	if dist < 0 || dist > p.nodes[id].depth {
		return noNode
	}
	for p.nodes[id].depth > dist {
		id = p.nodes[id].parent
	}
	return id
}

// Dump writes the node tree, one node per line. Alternatives are indented
// under their group and closed by a dashed line; a continuation is indented
// under the node it follows.
func (p *Prog) Dump(w io.Writer) error {
	var sb strings.Builder
	p.dump(&sb, 0, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *Prog) dump(sb *strings.Builder, id, indent int) {
	for id != noNode {
		n := &p.nodes[id]
		fmt.Fprintf(sb, "%s%s\n", strings.Repeat(" ", indent), n)
		if len(n.alts) > 0 {
			for _, alt := range n.alts {
				p.dump(sb, alt, indent+2)
			}
			fmt.Fprintf(sb, "%s\n", strings.Repeat("-", indent+4))
		}
		id = n.next
		indent += 2
	}
}
