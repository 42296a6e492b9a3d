package css

import "strings"

// rawPreludes names the at-rules whose parameters the grammar cannot be
// trusted with: range syntax like (width >= 40em), named containers and
// function calls inside conditions all produce error nodes.
var rawPreludes = []string{"media", "container"}

// maskPreludes returns a copy of src in which the parameters of every
// @media and @container rule are replaced by a plain "all" query padded
// with spaces. Byte offsets and line breaks are unchanged, so nodes from
// the masked tree index the original source directly.
func maskPreludes(src []byte) []byte {
	masked := make([]byte, len(src))
	copy(masked, src)
	for i := 0; i < len(src); {
		switch {
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(string(src[i+2:]), "*/")
			if end < 0 {
				return masked
			}
			i += end + 4
		case src[i] == '"' || src[i] == '\'':
			i = skipString(src, i)
		case src[i] == '@':
			start := i + 1
			for start < len(src) && isNameByte(src[start]) {
				start++
			}
			name := strings.ToLower(string(src[i+1 : start]))
			i = start
			if !isRawPrelude(name) {
				continue
			}
			end, ok := preludeEnd(src, start)
			if !ok {
				continue
			}
			blank(masked[start:end])
			i = end
		default:
			i++
		}
	}
	return masked
}

func isRawPrelude(name string) bool {
	for _, n := range rawPreludes {
		if n == name {
			return true
		}
	}
	return false
}

// preludeEnd finds the '{' or ';' that closes at-rule parameters starting
// at from, outside parentheses, strings and comments
func preludeEnd(src []byte, from int) (int, bool) {
	depth := 0
	for i := from; i < len(src); {
		switch b := src[i]; {
		case b == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(string(src[i+2:]), "*/")
			if end < 0 {
				return 0, false
			}
			i += end + 4
			continue
		case b == '"' || b == '\'':
			i = skipString(src, i)
			continue
		case b == '(':
			depth++
		case b == ')':
			depth = max(depth-1, 0)
		case depth == 0 && (b == '{' || b == ';'):
			return i, true
		case depth == 0 && b == '}':
			return 0, false
		}
		i++
	}
	return 0, false
}

// blank overwrites params with spaces and an "all" query. A leading space
// keeps the query apart from the keyword; line breaks stay put.
func blank(params []byte) {
	if strings.TrimSpace(string(params)) == "" {
		return
	}
	at := -1
	for i := 1; i+3 <= len(params); i++ {
		if !strings.ContainsAny(string(params[i:i+3]), "\r\n") {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for i, b := range params {
		if b != '\n' && b != '\r' {
			params[i] = ' '
		}
	}
	copy(params[at:], "all")
}

// skipString returns the index just past the string starting at i
func skipString(src []byte, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote, '\n':
			return j + 1
		}
	}
	return len(src)
}

func isNameByte(b byte) bool {
	return b == '-' || b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
