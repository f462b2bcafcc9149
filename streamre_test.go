package streamre

import (
	"strings"
	"testing"
)

func TestMatchSimple(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"foobar", "foobar", true},
		{"foo", "foo-x", false},
		{"foo", "fo", false},
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"", "", true},
		{"", "a", false},
		{"a.c", "a.c", true},
		{"a.c", "abc", false}, // dot is literal
		{"a||b", "b", true},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchEscapes(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{`[ -\u0080]*`, "foobar", true},
		{`a\[\]\]\(\)b[\[\-]+`, "a[]]()b-[", true},
		{`a\tb`, "a\tb", true},
		{`\r\n`, "\r\n", true},
		{`été`, "été", true},
		{`\*\+\?\{\}\|\\`, `*+?{}|\`, true},
		{`[\]\^]+`, "]^]", true},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchQuantifier(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"fo*ba*r", "foobr", true},
		{"f?o?bar", "fbar", true},
		{"fo+o?bar+", "foobarr", true},
		{"fo+bar", "fooobar", true},
		{"fo{2}bar", "foobar", true},
		{"fo{1,3}bar", "fooobar", true},
		{"fo{,3}bar", "fooobar", true},
		{"fo{3,}bar", "fooobar", true},
		{"fo{,2}bar", "fooobar", false},
		{"fo{4,}bar", "fooobar", false},
		{"a{2,3}", "a", false},
		{"a{2,3}", "aa", true},
		{"a{2,3}", "aaa", true},
		{"a{2,3}", "aaaa", false},
		{"a*", "", true},
		{"a+", "", false},
		{"a{0}b", "b", true},
		{"a{}b", "b", true},
		{"a?*", "aaa", true},  // the last quantifier wins
		{"a*?", "aa", false}, // and may narrow the count
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchCharClass(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{`f[ob]+[ax\t]?[r]`, "fooobar", true},
		{"[a-z^c-e]+", "fooobar", true},
		{"[a-z^c-e]+", "fooodar", false},
		{"[^c-e]+", "fooobar", true},
		{"[^c-er]+", "fooobar", false},
		{"[-a]+", "a-a", true},
		{"[a-]+", "-a", true},
		{"[]+", "any thing", true},
		{"[Ā-￿]+", "中文", true},
		{"[Ā-￿]+", "abc", false},
		{"[^中]", "中", false},
		{"[^中]", "x", true},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchAlternation(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"a|b*|c", "a", true},
		{"a|b*|c", "bb", true},
		{"a|b*|c", "c", true},
		{"a|b*|c", "", true},
		{"a|b*|c", "ab", false},
		{"(a)|(b*)|(c)", "c", true},
		{"foo|bar", "baz", false},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchGroups(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"(f)(o)oobar", "fooobar", true},
		{"(o)*", "ooo", true},
		{"(o){2}", "ooo", false},
		{"(o){2}", "o", false},
		{"(o){3}", "ooo", true},
		{"(o)*(p)*", "ooopp", true},
		{"(f|o)*bar", "fooobar", true},
		{"(f|(o))*bar", "fooobar", true},
		{"((f)|(o))*bar", "fooobar", true},
		{"(((fg?))|(o|p))*(bar)+", "fooobarbar", true},
		{"(f(o?)?o)*", "foo", true},
		{"(f|[op]{1})*bar", "fooobar", true},
		{"(f[op]{1,3})*", "fooofoo", true},
		{"(f[op]{1,3})*", "foof", false},
		{"(((a)))*", "aaa", true},
		{"(((a)))*((b)){2}", "aaabb", true},
		{"(((a)b))*", "abab", true},
		{"((a(b)))*", "abab", true},
		{"((a(b)))*", "aba", false},
		{"(b(ö|a(c)?(r|x)))", "bar", true},
		{"(b(ö|a(c)?(r|x)))", "bö", true},
		{"(f[op]{3})*(b(c|(b)(r|x)))", "fooobar", false},
		{"(o){2}x", "ox", false},
		{"(o){2}x", "oox", true},
		{"(ab){2}x", "ababx", true},
		{"(a*)*", "aaaa", true},
		{"(a?){3}", "", true},
		{"(a|a)*b", "aaaab", true},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tc.pattern, tc.input, got, tc.match)
		}
	}
}

func TestMatchCombo(t *testing.T) {
	re := MustCompile("(a*[0-9]+(.[0-9])?)|foobar|baz")
	for _, input := range []string{"aaaa0.3", "foobar", "baz", "7"} {
		if !re.MatchString(input) {
			t.Errorf("MatchString(%q, %q) = false; want true", re, input)
		}
	}
	for _, input := range []string{"aaaa", "0.", "fooba"} {
		if re.MatchString(input) {
			t.Errorf("MatchString(%q, %q) = true; want false", re, input)
		}
	}
}

func TestMatchLatin1Input(t *testing.T) {
	re := MustCompile(`café`)
	if !re.Match([]byte{'c', 'a', 'f', 0xE9}) {
		t.Errorf("Match(%q, latin-1 bytes) = false; want true", re)
	}
	if !re.Match([]byte("café")) {
		t.Errorf("Match(%q, utf-8 bytes) = false; want true", re)
	}
}

func TestMatchLongInput(t *testing.T) {
	re := MustCompile("(ab)*")
	ok, err := re.MatchReader(strings.NewReader(strings.Repeat("ab", 100000)))
	if err != nil || !ok {
		t.Errorf("MatchReader((ab)*, ab...) = %v, %v; want true, nil", ok, err)
	}
	ok, err = re.MatchReader(strings.NewReader(strings.Repeat("ab", 1000) + "a"))
	if err != nil || ok {
		t.Errorf("MatchReader((ab)*, ab...a) = %v, %v; want false, nil", ok, err)
	}
}

func TestMatchLongNestedInput(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"(a+)+", strings.Repeat("a", 100000), true},
		{"(a*)*", strings.Repeat("a", 100000), true},
		{"([a-z]+-?)+", strings.Repeat("ab-", 30000), true},
		{"([a-z]+-?)+", strings.Repeat("ab-", 30000) + "-", false},
		{"(a+)+b", strings.Repeat("a", 100000), false},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		ok, err := re.MatchReader(strings.NewReader(tc.input))
		if err != nil || ok != tc.match {
			t.Errorf("MatchReader(%q, %d code points) = %v, %v; want %v, nil", tc.pattern, len(tc.input), ok, err, tc.match)
		}
	}
}

func TestMatchesPushesBackRejected(t *testing.T) {
	src := NewStringSource("foo-x")
	ok, err := MustCompile("foo").Matches(src)
	if err != nil || ok {
		t.Fatalf("Matches = %v, %v; want false, nil", ok, err)
	}
	r, err := src.ReadRune()
	if err != nil || r != '-' {
		t.Errorf("ReadRune after Matches = %q, %v; want '-', nil", r, err)
	}
}
