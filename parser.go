package streamre

import (
	"strconv"
	"unicode/utf8"
)

// Parser turns a pattern into a node arena. Node 0 is the root group whose
// alternatives are the top-level branches.
type Parser struct {
	input string
	pos   int

	nodes   []node
	classes *classCache
}

func NewParser(input string) *Parser {
	return &Parser{
		input:   input,
		classes: newClassCache(),
	}
}

// parse reads the whole pattern.
func (p *Parser) parse() ([]node, error) {
	root := p.newNode(nil, noNode, noNode)
	if err := p.parseAlts(root); err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		// parseAlts only stops early on ')'
		return nil, p.errorf(p.pos, "unmatched )")
	}
	if len(p.nodes[root].alts) == 0 {
		// The empty pattern matches the empty input.
		p.nodes[root].min = 0
	}
	return p.nodes, nil
}

func (p *Parser) newNode(class *CharClass, parent, group int) int {
	n := node{
		class:   class,
		isGroup: class == nil,
		min:     1,
		max:     1,
		next:    noNode,
		parent:  parent,
		group:   group,
		offset:  p.pos,
	}
	if parent != noNode {
		n.depth = p.nodes[parent].depth + 1
	}
	p.nodes = append(p.nodes, n)
	return len(p.nodes) - 1
}

// parseAlts reads branch | branch | ... into the alternatives of group g.
// Empty branches are dropped.
func (p *Parser) parseAlts(g int) error {
	for {
		head, err := p.parseSeq(g)
		if err != nil {
			return err
		}
		if head != noNode {
			p.nodes[g].alts = append(p.nodes[g].alts, head)
		}
		if p.pos < len(p.input) && p.peek() == '|' {
			p.consume()
			continue
		}
		return nil
	}
}

// parseSeq reads one branch of group g and returns its first node.
func (p *Parser) parseSeq(g int) (int, error) {
	first, last := noNode, noNode
	link := func(id int) {
		if last == noNode {
			first = id
		} else {
			p.nodes[last].next = id
		}
		last = id
	}
	attach := func() int {
		if last == noNode {
			return g
		}
		return last
	}

	for p.pos < len(p.input) {
		switch p.peek() {
		case ')', '|':
			return first, nil
		case ']':
			return noNode, p.errorf(p.pos, "unmatched ]")
		case '(':
			id, err := p.parseGroup(attach(), g)
			if err != nil {
				return noNode, err
			}
			link(id)
		case '[':
			id, err := p.parseCharClass(attach(), g)
			if err != nil {
				return noNode, err
			}
			link(id)
		case '?', '*', '+', '{':
			if last == noNode {
				return noNode, p.errorf(p.pos, "quantifier without target")
			}
			if err := p.parseCount(last); err != nil {
				return noNode, err
			}
		default:
			start := p.pos
			r, err := p.parseChar(false)
			if err != nil {
				return noNode, err
			}
			class := p.classes.storeOrGet(newRuneClass(r))
			id := p.newNode(class, attach(), g)
			p.nodes[id].offset = start
			link(id)
		}
	}
	return first, nil
}

func (p *Parser) parseGroup(parent, encl int) (int, error) {
	start := p.pos
	p.consume() // eat (
	id := p.newNode(nil, parent, encl)
	p.nodes[id].offset = start
	if err := p.parseAlts(id); err != nil {
		return noNode, err
	}
	if p.pos >= len(p.input) {
		return noNode, p.errorf(start, "unterminated group")
	}
	p.consume() // eat )
	if len(p.nodes[id].alts) == 0 {
		return noNode, p.errorf(start, "empty group")
	}
	return id, nil
}

// parseCharClass reads [...]. A ^ anywhere toggles negation for the entries
// that follow it; a - that has no range start or end is literal.
func (p *Parser) parseCharClass(parent, encl int) (int, error) {
	start := p.pos
	p.consume() // eat [

	cc := newSetClass()
	negated := false
	lo := noRune
	for {
		if p.pos >= len(p.input) {
			return noNode, p.errorf(start, "unterminated character class")
		}
		switch ch := p.peek(); {
		case ch == ']':
			p.consume()
			cc.simplify()
			id := p.newNode(p.classes.storeOrGet(cc), parent, encl)
			p.nodes[id].offset = start
			return id, nil
		case ch == '^':
			p.consume()
			negated = !negated
			lo = noRune
		case ch == '-' && lo != noRune && p.rangeFollows():
			p.consume()
			at := p.pos
			hi, err := p.parseChar(true)
			if err != nil {
				return noNode, err
			}
			if hi < lo {
				return noNode, p.errorf(at, "invalid class range")
			}
			cc.addRange(lo, hi, negated)
			lo = noRune
		default:
			r, err := p.parseChar(true)
			if err != nil {
				return noNode, err
			}
			cc.addRune(r, negated)
			lo = r
		}
	}
}

// rangeFollows reports whether the - at pos has a range end after it.
func (p *Parser) rangeFollows() bool {
	next := p.pos + 1
	return next < len(p.input) && p.input[next] != ']'
}

// parseChar reads one literal code point, resolving escapes.
func (p *Parser) parseChar(inClass bool) (rune, error) {
	if p.peek() != '\\' {
		return p.consume(), nil
	}
	start := p.pos
	p.consume() // eat \
	if p.pos >= len(p.input) {
		if inClass {
			return 0, p.errorf(start, "unterminated character class")
		}
		return 0, p.errorf(start, "trailing backslash")
	}
	switch esc := p.consume(); esc {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		if p.pos+4 > len(p.input) {
			return 0, p.errorf(start, "malformed \\u escape")
		}
		v, err := strconv.ParseUint(p.input[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return 0, p.errorf(start, "malformed \\u escape")
		}
		p.pos += 4
		return rune(v), nil
	default:
		return esc, nil
	}
}

// parseCount applies ?, *, + or {n,m} to node id. A later quantifier on the
// same node replaces an earlier one.
func (p *Parser) parseCount(id int) error {
	start := p.pos
	n := &p.nodes[id]
	switch p.consume() {
	case '?':
		n.min, n.max = 0, 1
		return nil
	case '*':
		n.min, n.max = 0, Unbounded
		return nil
	case '+':
		n.min, n.max = 1, Unbounded
		return nil
	}

	// {n}, {n,}, {,m}, {n,m} and {}
	min, _, err := p.parseNumber(start)
	if err != nil {
		return err
	}
	max := min
	var ok bool
	if p.pos < len(p.input) && p.peek() == ',' {
		p.consume()
		if max, ok, err = p.parseNumber(start); err != nil {
			return err
		}
		if !ok {
			max = Unbounded
		}
	}
	if p.pos >= len(p.input) || p.peek() != '}' {
		return p.errorf(start, "} is missing")
	}
	p.consume()
	if min > max {
		return p.errorf(start, "bad repetition range")
	}
	n = &p.nodes[id]
	n.min, n.max = min, max
	return nil
}

func (p *Parser) parseNumber(start int) (int, bool, error) {
	from := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == from {
		return 0, false, nil
	}
	v, err := strconv.Atoi(p.input[from:p.pos])
	if err != nil {
		return 0, false, p.errorf(start, "repetition count out of range")
	}
	return v, true, nil
}

// Helpers

func (p *Parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r
}

func (p *Parser) consume() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += w
	return r
}

func (p *Parser) errorf(offset int, msg string) error {
	return &SyntaxError{Pattern: p.input, Offset: offset, Msg: msg}
}
