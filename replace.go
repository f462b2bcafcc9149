package streamre

import "strings"

// scanTokens walks s, reading a token with ReadItem wherever one starts and
// stepping over a single code point wherever none does. fn gets every token
// together with the text skipped since the previous one. The text after the
// last token is returned; if fn returns false the scan stops and the
// returned text starts with the gap and token of that call.
func (re *Regexp) scanTokens(s string, fn func(gap, tok string) bool) string {
	src := NewStringSource(s)
	var gap strings.Builder
	for {
		src.Mark()
		tok, ok, err := re.ReadItem(src)
		if err != nil {
			break
		}
		if ok {
			if !fn(gap.String(), tok) {
				gap.WriteString(tok)
				readAll(&gap, src)
				break
			}
			gap.Reset()
			continue
		}
		src.Rewind()
		r, err := src.ReadRune()
		if err != nil {
			break
		}
		gap.WriteRune(r)
	}
	return gap.String()
}

func readAll(sb *strings.Builder, src Source) {
	for {
		r, err := src.ReadRune()
		if err != nil {
			return
		}
		sb.WriteRune(r)
	}
}

// FindAllString returns successive non-overlapping tokens of s, leftmost
// first. If n >= 0 at most n tokens are returned.
func (re *Regexp) FindAllString(s string, n int) []string {
	var out []string
	if n == 0 {
		return nil
	}
	re.scanTokens(s, func(_, tok string) bool {
		out = append(out, tok)
		return n < 0 || len(out) < n
	})
	return out
}

// ReplaceAllStringFunc returns a copy of s in which every token has been
// replaced by the return value of repl applied to it.
func (re *Regexp) ReplaceAllStringFunc(s string, repl func(string) string) string {
	var sb strings.Builder
	rest := re.scanTokens(s, func(gap, tok string) bool {
		sb.WriteString(gap)
		sb.WriteString(repl(tok))
		return true
	})
	sb.WriteString(rest)
	return sb.String()
}

// ReplaceAllLiteralString returns a copy of s in which every token has been
// replaced by repl.
func (re *Regexp) ReplaceAllLiteralString(s, repl string) string {
	return re.ReplaceAllStringFunc(s, func(string) string {
		return repl
	})
}

// Split slices s into the substrings between tokens. If n >= 0 at most n
// substrings are returned and the last one is the unsplit remainder.
func (re *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}
	var out []string
	rest := re.scanTokens(s, func(gap, _ string) bool {
		if n > 0 && len(out) == n-1 {
			return false
		}
		out = append(out, gap)
		return true
	})
	return append(out, rest)
}
