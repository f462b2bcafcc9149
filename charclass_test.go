package streamre

import "testing"

func TestCharClassSimplify(t *testing.T) {
	cc := newSetClass()
	cc.addRange(100, 200, false)
	cc.addRange(110, 111, true)
	cc.simplify()

	tests := []struct {
		r    rune
		want bool
	}{
		{0, false},
		{0xFFFF, false},
		{99, false},
		{100, true},
		{109, true},
		{110, false},
		{111, false},
		{112, true},
		{200, true},
	}
	for _, tc := range tests {
		if got := cc.Contains(tc.r); got != tc.want {
			t.Errorf("Contains(%d) = %v; want %v", tc.r, got, tc.want)
		}
	}
	if cc.inr != nil || cc.outr != nil {
		t.Errorf("ranges inside the window were not folded: %v %v", cc.inr, cc.outr)
	}
}

func TestCharClassContains(t *testing.T) {
	tests := []struct {
		build func(*CharClass)
		r     rune
		want  bool
	}{
		// empty class
		{func(*CharClass) {}, 'x', true},
		// [^c-e]
		{func(c *CharClass) { c.addRange('c', 'e', true) }, 'a', true},
		{func(c *CharClass) { c.addRange('c', 'e', true) }, 'd', false},
		// [^x]
		{func(c *CharClass) { c.addRune('x', true) }, 'x', false},
		{func(c *CharClass) { c.addRune('x', true) }, 'y', true},
		// [Ā-￿]
		{func(c *CharClass) { c.addRange(0x100, 0xFFFF, false) }, 0x4E2D, true},
		{func(c *CharClass) { c.addRange(0x100, 0xFFFF, false) }, 0x100, true},
		{func(c *CharClass) { c.addRange(0x100, 0xFFFF, false) }, 'a', false},
		// [\u0000-￿^a]
		{func(c *CharClass) { c.addRange(0, 0xFFFF, false); c.addRune('a', true) }, 'a', false},
		{func(c *CharClass) { c.addRange(0, 0xFFFF, false); c.addRune('a', true) }, 'b', true},
		// [^中]
		{func(c *CharClass) { c.addRune(0x4E2D, true) }, 0x4E2D, false},
		// [中-丯^丮]
		{func(c *CharClass) { c.addRange(0x4E2D, 0x4E2F, false); c.addRune(0x4E2E, true) }, 0x4E2E, false},
		{func(c *CharClass) { c.addRange(0x4E2D, 0x4E2F, false); c.addRune(0x4E2E, true) }, 0x4E2F, true},
	}
	for i, tc := range tests {
		cc := newSetClass()
		tc.build(cc)
		cc.simplify()
		if got := cc.Contains(tc.r); got != tc.want {
			t.Errorf("case %d: %v.Contains(%q) = %v; want %v", i, cc, tc.r, got, tc.want)
		}
	}
}

func TestCharClassEqual(t *testing.T) {
	a := newSetClass()
	for _, r := range "abc" {
		a.addRune(r, false)
	}
	a.simplify()
	b := newSetClass()
	b.addRange('a', 'c', false)
	b.simplify()

	if !a.Equal(b) {
		t.Errorf("%v.Equal(%v) = false; want true", a, b)
	}
	if a.hash() != b.hash() {
		t.Errorf("hash(%v) != hash(%v)", a, b)
	}
	if newRuneClass('a').Equal(a) {
		t.Errorf("'a'.Equal(%v) = true; want false", a)
	}
}

func TestClassCount(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"[o][m][o][m]", 2},
		{"[abc][a-c]", 1},
		{"abcabc", 3},
		{"a[a]", 2},
		{"(x|x)*x", 1},
		{"", 0},
	}
	for _, tc := range tests {
		if got := MustCompile(tc.pattern).ClassCount(); got != tc.want {
			t.Errorf("ClassCount(%q) = %d; want %d", tc.pattern, got, tc.want)
		}
	}
}
