// Package themes expands the themes(light, dark) value macro.
//
// A declaration such as
//
//	color: themes(#000, #fff);
//
// becomes a light declaration in place, followed by a dark variant wrapped in
// a conditional block for the mixin layer to expand:
//
//	color: #000;
//	@mixin dark {
//	  color: #fff;
//	}
package themes

import (
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/scan"
)

const (
	// Macro is the name of the value macro
	Macro = "themes"
	// BlockName is the at-rule wrapping the dark declaration
	BlockName = "mixin"
	// DarkCondition is the parameter of the dark block
	DarkCondition = "dark"
)

// Resolve splits a value containing theme macros into its light and dark
// variants. Macros may nest in either branch or repeat in the remainder of
// the value. Values without a macro call resolve to themselves.
func Resolve(value string) (light, dark string) {
	call, ok := scan.FindCall(value, Macro, 0)
	if !ok {
		return value, value
	}

	prefix := value[:call.Start]
	lightArg, darkArg, _ := scan.Until(call.Args, ',')
	suffixLight, suffixDark := Resolve(value[call.End:])

	light, _ = Resolve(strings.TrimSpace(lightArg))
	_, dark = Resolve(strings.TrimSpace(darkArg))

	return prefix + light + suffixLight, prefix + dark + suffixDark
}

// Expand rewrites every declaration below root whose value mentions the
// macro into a light declaration and a dark conditional block
func Expand(root *ast.Root) {
	ast.WalkDecls(root, func(d *ast.Decl) {
		ExpandDecl(d)
	})
}

// ExpandDecl rewrites a single declaration. It reports whether the
// declaration was replaced; declarations that are detached or do not
// mention the macro are left untouched.
func ExpandDecl(d *ast.Decl) bool {
	if d.Parent() == nil || !scan.HasWord(d.Value, Macro) {
		return false
	}

	light, dark := Resolve(d.Value)

	lightDecl := ast.NewDecl(d.Prop, light)
	lightDecl.Important = d.Important
	darkDecl := ast.NewDecl(d.Prop, dark)
	darkDecl.Important = d.Important

	log.Debug("Expanding %s: %q -> light %q, dark %q", d.Prop, d.Value, light, dark)

	return ast.Replace(d, lightDecl, ast.NewAtRule(BlockName, DarkCondition, darkDecl))
}
