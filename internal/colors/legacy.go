package colors

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/colormath"
	"bennypowers.dev/csscomposer/internal/log"
)

// legacyPattern matches a whole declaration value; there is no fallback form
var legacyPattern = regexp.MustCompile(`^(hsl|rgb|hwb|oklch)\(var\((--[\w-]+)\)(?:\s*/\s*([\d.]+))?\)$`)

// RootHexColors collects hex colors defined directly in top-level :root
// rules. Later definitions replace earlier ones.
func RootHexColors(root *ast.Root) map[string]string {
	defs := map[string]string{}
	for _, n := range root.Nodes() {
		rule, ok := n.(*ast.Rule)
		if !ok || !isRootSelector(rule.Selector) {
			continue
		}
		for _, c := range rule.Nodes() {
			d, ok := c.(*ast.Decl)
			if !ok || !strings.HasPrefix(d.Prop, "--") {
				continue
			}
			if v := strings.TrimSpace(d.Value); colormath.IsHex(v) {
				defs[d.Prop] = colormath.NormalizeHex(v)
			}
		}
	}
	return defs
}

func (p *Pass) runLegacy(root *ast.Root) {
	defs := RootHexColors(root)
	space := p.resolver.Space

	ast.WalkDecls(root, func(d *ast.Decl) {
		m := legacyPattern.FindStringSubmatch(strings.TrimSpace(d.Value))
		if m == nil {
			return
		}
		hex, ok := defs[m[2]]
		if !ok {
			return
		}
		color, ok := space.Parse(hex).Get()
		if !ok {
			return
		}
		if m[3] != "" {
			a, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return
			}
			color = color.WithAlpha(a)
		}
		out, err := colormath.Serialize(space, color, colormath.Mode(m[1]))
		if err != nil {
			log.Debug("Leaving %s: %v", d.Value, err)
			return
		}
		d.Value = out
	})
}
