// Package scan is a small cursor-based scanner for CSS value text.
//
// It understands just enough syntax to split argument lists and locate
// function calls: parenthesis nesting and quoted strings. Everything else is
// opaque text. None of the functions fail; malformed input degrades to a
// best-effort result (an unterminated call consumes to end of string, and a
// stray closing parenthesis never drives the nesting depth below zero).
package scan

import "strings"

// Call is a function call found in a larger string
type Call struct {
	// Name is the function name, without the opening parenthesis
	Name string
	// Start is the byte offset of the first character of Name
	Start int
	// End is the byte offset just past the closing parenthesis, or len(s) if unterminated
	End int
	// Args is the raw text between the parentheses
	Args string
	// Closed reports whether a matching closing parenthesis was found
	Closed bool
}

// Until returns the text before the first delim found at nesting depth zero
// and outside quotes, and the text after it. When delim does not occur, token
// is all of s, rest is empty and found is false.
func Until(s string, delim byte) (token, rest string, found bool) {
	c := cursor{src: s}
	for !c.done() {
		b := c.peek()
		if c.depth == 0 && c.quote == 0 && b == delim {
			return s[:c.pos], s[c.pos+1:], true
		}
		c.advance()
	}
	return s, "", false
}

// Split returns all pieces of s separated by delim at nesting depth zero
func Split(s string, delim byte) []string {
	var parts []string
	for {
		token, rest, found := Until(s, delim)
		parts = append(parts, token)
		if !found {
			return parts
		}
		s = rest
	}
}

// Contains reports whether delim occurs in s at nesting depth zero
func Contains(s string, delim byte) bool {
	_, _, found := Until(s, delim)
	return found
}

// FindCall returns the first call to name at or after offset from.
// The name must start at an identifier boundary, so FindCall(s, "em", 0)
// does not match inside "rem(".
func FindCall(s, name string, from int) (Call, bool) {
	needle := name + "("
	for from <= len(s)-len(needle) {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			return Call{}, false
		}
		start := from + i
		if start > 0 && isIdent(s[start-1]) {
			from = start + 1
			continue
		}
		open := start + len(needle)
		args, rest, closed := Until(s[open:], ')')
		return Call{
			Name:   name,
			Start:  start,
			End:    len(s) - len(rest),
			Args:   args,
			Closed: closed,
		}, true
	}
	return Call{}, false
}

// FindAnyCall returns the earliest call to any of names at or after from
func FindAnyCall(s string, names []string, from int) (Call, bool) {
	var best Call
	found := false
	for _, name := range names {
		call, ok := FindCall(s, name, from)
		if ok && (!found || call.Start < best.Start) {
			best, found = call, true
		}
	}
	return best, found
}

// HasWord reports whether word occurs in s as a whole word,
// bounded on both sides by a non-word character or the string edges
func HasWord(s, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if (start == 0 || !isWord(s[start-1])) && (end == len(s) || !isWord(s[end])) {
			return true
		}
		from = start + 1
	}
}

func isWord(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdent(b byte) bool {
	return b == '-' || isWord(b)
}

type cursor struct {
	src   string
	pos   int
	depth int
	quote byte
}

func (c *cursor) done() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() byte { return c.src[c.pos] }

// advance consumes one byte, tracking quotes and parenthesis depth
func (c *cursor) advance() {
	b := c.src[c.pos]
	c.pos++
	if c.quote != 0 {
		switch b {
		case '\\':
			if !c.done() {
				c.pos++
			}
		case c.quote:
			c.quote = 0
		}
		return
	}
	switch b {
	case '"', '\'':
		c.quote = b
	case '(':
		c.depth++
	case ')':
		if c.depth > 0 {
			c.depth--
		}
	}
}
