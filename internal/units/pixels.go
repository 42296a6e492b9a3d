package units

import (
	"io"
	"strconv"
	"strings"

	"bennypowers.dev/csscomposer/internal/collections"
	"bennypowers.dev/csscomposer/internal/log"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// opaqueFunctions never have their arguments rewritten by the pixel pass.
// An unquoted url(...) is a single token; a quoted one opens a function.
var opaqueFunctions = collections.NewSet(
	"calc", "clamp", "min", "max", "var", "env", "url",
	"rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch", "color", "color-mix",
	"linear-gradient", "radial-gradient", "conic-gradient",
	"repeating-linear-gradient", "repeating-radial-gradient", "repeating-conic-gradient",
)

// Pixels converts every px dimension in value that is not nested inside an
// opaque function. Bare numbers are never touched. The value is returned
// unchanged when it cannot be tokenized.
func (p *Pass) Pixels(value string) string {
	if !strings.Contains(strings.ToLower(value), "px") {
		return value
	}

	lexer := css.NewLexer(parse.NewInput(strings.NewReader(value)))

	var b strings.Builder
	// one entry per open parenthesis: whether it opened an opaque function
	var stack []bool
	opaque := 0
	changed := false

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				log.Debug("Leaving %q: %v", value, err)
				return value
			}
			break
		}
		text := string(data)

		switch tt {
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(text, "("))
			isOpaque := opaqueFunctions.Has(name)
			stack = append(stack, isOpaque)
			if isOpaque {
				opaque++
			}
		case css.LeftParenthesisToken:
			stack = append(stack, false)
		case css.RightParenthesisToken:
			if n := len(stack); n > 0 {
				if stack[n-1] {
					opaque--
				}
				stack = stack[:n-1]
			}
		case css.DimensionToken:
			if opaque == 0 {
				if converted, ok := p.pixelDimension(text); ok {
					text = converted
					changed = true
				}
			}
		}

		b.WriteString(text)
	}

	if !changed {
		return value
	}
	return b.String()
}

func (p *Pass) pixelDimension(text string) (string, bool) {
	m := dimensionPattern.FindStringSubmatch(text)
	if m == nil || !strings.EqualFold(m[2], "px") {
		return "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	return p.pixel.Number(n), true
}
