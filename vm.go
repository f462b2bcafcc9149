package streamre

import "math"

// lane is one partial match in flight. For an atom, count is how many code
// points the atom has consumed; for a group, how many repetitions it has
// completed. parent is the lane of the enclosing group and is nil only for
// the root lane; depth is the length of the parent chain.
//
// Group lanes are interned per read, so two lanes are the same state exactly
// when they are the same pointer.
type lane struct {
	node   int
	count  int
	parent *lane
	depth  int
}

type laneKey struct {
	node, count int
	parent      *lane
}

const (
	opEnter  = iota // start node afresh inside lane
	opLeave         // move past node within lane
	opRepeat        // group lane: begin another repetition or leave
	opFinish        // group lane: the current repetition has ended
	opOffer         // atom may consume the next code point
)

// allConsumed is the fresh depth of a task reached from a lane that has just
// consumed a code point: every enclosing repetition has made progress.
const allConsumed = math.MaxInt

// task is one unit of closure work. fresh is the depth of the outermost group
// lane whose current repetition was started during this closure; the
// repetitions of lanes at that depth and below have consumed nothing yet.
type task struct {
	op    int
	node  int
	count int
	lane  *lane
	fresh int
}

type visitKey struct {
	op, node, count, fresh int
	lane                   *lane
}

// VM advances a set of lanes one code point at a time. Before each code
// point it expands the lanes into every atom that could consume next and
// notes whether the input read so far is a complete match.
//
// The lane set only holds distinct states, so its size is bounded by the
// shape of the pattern and not by the length of the input.
//
// A VM is used for a single read and is not safe for concurrent use.
type VM struct {
	prog  *Prog
	lanes []*lane

	work    []task
	visited map[visitKey]bool
	groups  map[laneKey]*lane
	seen    map[laneKey]bool

	// Results of the last expand.
	offers []task
	accept bool
	branch int
}

func NewVM(prog *Prog) *VM {
	vm := &VM{
		prog:    prog,
		visited: make(map[visitKey]bool),
		groups:  make(map[laneKey]*lane),
		seen:    make(map[laneKey]bool),
	}
	vm.lanes = []*lane{vm.groupLane(0, 0, nil)}
	return vm
}

// expand computes the offers and the acceptance of the current lanes.
func (vm *VM) expand() {
	clear(vm.visited)
	vm.offers = vm.offers[:0]
	vm.accept = false
	vm.branch = -1

	for _, l := range vm.lanes {
		n := &vm.prog.nodes[l.node]
		if n.isGroup {
			vm.push(opRepeat, l.node, l.count, l, allConsumed)
			continue
		}
		if l.count < n.max {
			vm.push(opOffer, l.node, l.count, l.parent, allConsumed)
		}
		if l.count >= n.min {
			vm.push(opLeave, l.node, 0, l.parent, allConsumed)
		}
	}
	vm.drain()
}

func (vm *VM) push(op, id, count int, l *lane, fresh int) {
	// Only the levels of l's chain matter, and a repeat starts a fresh
	// repetition of l itself.
	switch {
	case l == nil:
		fresh = allConsumed
	case op == opRepeat:
		fresh = min(fresh, l.depth)
	default:
		fresh = min(fresh, l.depth+1)
	}
	vm.work = append(vm.work, task{op: op, node: id, count: count, lane: l, fresh: fresh})
}

func (vm *VM) drain() {
	for len(vm.work) > 0 {
		t := vm.work[len(vm.work)-1]
		vm.work = vm.work[:len(vm.work)-1]

		key := visitKey{op: t.op, node: t.node, count: t.count, fresh: t.fresh, lane: t.lane}
		if vm.visited[key] {
			continue
		}
		vm.visited[key] = true

		n := &vm.prog.nodes[t.node]
		switch t.op {
		case opOffer:
			vm.offers = append(vm.offers, t)

		case opEnter:
			if n.isGroup {
				g := vm.groupLane(t.node, 0, t.lane)
				vm.push(opRepeat, g.node, g.count, g, t.fresh)
				continue
			}
			if n.max > 0 {
				vm.push(opOffer, t.node, 0, t.lane, t.fresh)
			}
			if n.min == 0 {
				vm.push(opLeave, t.node, 0, t.lane, t.fresh)
			}

		case opLeave:
			switch {
			case n.next != noNode:
				vm.push(opEnter, n.next, 0, t.lane, t.fresh)
			case t.lane == nil:
				// Only the root is left with no enclosing lane.
				vm.hit(-1)
			case t.lane.parent == nil:
				// Last node of a root alternative.
				vm.hit(n.branch)
			default:
				vm.push(opFinish, t.lane.node, t.lane.count, t.lane, t.fresh)
			}

		case opRepeat:
			g := t.lane
			if g.count < n.max {
				for i := len(n.alts) - 1; i >= 0; i-- {
					vm.push(opEnter, n.alts[i], 0, g, min(t.fresh, g.depth))
				}
			}
			if g.count >= n.min {
				vm.push(opLeave, g.node, 0, g.parent, t.fresh)
			}

		case opFinish:
			g := t.lane
			if g.depth >= t.fresh {
				// The repetition consumed nothing. Repeating it again
				// cannot make progress, and the remaining minimum can be
				// met by further empty repetitions.
				vm.push(opLeave, g.node, 0, g.parent, t.fresh)
				continue
			}
			h := vm.groupLane(g.node, g.count+1, g.parent)
			vm.push(opRepeat, h.node, h.count, h, t.fresh)
		}
	}
}

// groupLane returns the lane for a group state, sharing it between every
// path and every step that reaches the same state.
func (vm *VM) groupLane(id, count int, parent *lane) *lane {
	count = clampCount(&vm.prog.nodes[id], count)
	key := laneKey{node: id, count: count, parent: parent}
	if g, ok := vm.groups[key]; ok {
		return g
	}
	g := &lane{node: id, count: count, parent: parent}
	if parent != nil {
		g.depth = parent.depth + 1
	}
	vm.groups[key] = g
	return g
}

// hit records that the input read so far is a complete match, keeping the
// lowest root alternative.
func (vm *VM) hit(branch int) {
	if branch >= 0 && (vm.branch < 0 || branch < vm.branch) {
		vm.branch = branch
	}
	vm.accept = true
}

// advance consumes r with the offers of the last expand and reports whether
// any lane survived.
func (vm *VM) advance(r rune) bool {
	clear(vm.seen)
	next := make([]*lane, 0, len(vm.offers))
	for _, o := range vm.offers {
		n := &vm.prog.nodes[o.node]
		if !n.class.Contains(r) {
			continue
		}
		key := laneKey{node: o.node, count: clampCount(n, o.count+1), parent: o.lane}
		if vm.seen[key] {
			continue
		}
		vm.seen[key] = true
		l := &lane{node: key.node, count: key.count, parent: key.parent}
		if l.parent != nil {
			l.depth = l.parent.depth + 1
		}
		next = append(next, l)
	}
	vm.lanes = next
	return len(next) > 0
}

// clampCount folds counts past min into min when max is unbounded. Such
// counts all behave alike and folding them keeps the lane set small.
func clampCount(n *node, count int) int {
	if n.max == Unbounded && count > n.min {
		return n.min
	}
	return count
}
