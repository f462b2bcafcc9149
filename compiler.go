package streamre

// Compiler derives the static facts the matcher relies on from a parsed
// node arena.
type Compiler struct {
	nodes []node
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) compile(nodes []node, classes *classCache) (*Prog, error) {
	c.nodes = nodes
	c.markBranches()
	c.markPossiblyEnding()
	return &Prog{
		nodes:      c.nodes,
		NumClasses: classes.Len(),
	}, nil
}

// markBranches records for every node the root alternative it belongs to.
func (c *Compiler) markBranches() {
	c.nodes[0].branch = -1
	for i, alt := range c.nodes[0].alts {
		stack := []int{alt}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &c.nodes[id]
			n.branch = i
			if n.next != noNode {
				stack = append(stack, n.next)
			}
			stack = append(stack, n.alts...)
		}
	}
}

// markPossiblyEnding sets possiblyEnding bottom up. A node's continuation
// and alternatives always have larger ids, so a reverse scan sees them
// first. done[id] is what id reports to the node before it: false when id
// is a mandatory atom.
func (c *Compiler) markPossiblyEnding() {
	done := make([]bool, len(c.nodes))
	ends := func(id int) bool {
		return id == noNode || done[id]
	}
	for id := len(c.nodes) - 1; id >= 0; id-- {
		n := &c.nodes[id]
		n.possiblyEnding = ends(n.next)
		for _, alt := range n.alts {
			n.possiblyEnding = n.possiblyEnding && ends(alt)
		}
		done[id] = n.possiblyEnding && (n.isGroup || n.min == 0)
	}
}
