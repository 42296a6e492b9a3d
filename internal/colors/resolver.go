package colors

import (
	"regexp"
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/collections"
	"bennypowers.dev/csscomposer/internal/colormath"
	"bennypowers.dev/csscomposer/internal/scan"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var namePattern = regexp.MustCompile(`^--[\w-]+$`)

// reference is a parsed var(--name[, fallback])
type reference struct {
	name     string
	fallback string
}

// parseReference accepts text that is exactly one var() call
func parseReference(text string) (reference, bool) {
	call, ok := scan.FindCall(text, "var", 0)
	if !ok || call.Start != 0 || !call.Closed || call.End != len(text) {
		return reference{}, false
	}
	name, fallback, hasFallback := scan.Until(call.Args, ',')
	name = strings.TrimSpace(name)
	fallback = strings.TrimSpace(fallback)
	if !namePattern.MatchString(name) || hasFallback && fallback == "" {
		return reference{}, false
	}
	return reference{name: name, fallback: fallback}, true
}

// Resolver looks up custom property colors through the scope chain
type Resolver struct {
	Space colormath.Space
}

// Resolve finds the color bound to name as seen from scope. The innermost
// scope with a usable definition wins; without one, fallback is used.
// References to other properties are followed; a property reached twice
// ends the chain with that reference's fallback.
func (r *Resolver) Resolve(scope ast.Container, name, fallback string) mo.Option[colormath.Color] {
	return r.resolve(scope, reference{name: name, fallback: fallback}, collections.NewSet[string]())
}

func (r *Resolver) resolve(scope ast.Container, ref reference, visited collections.Set[string]) mo.Option[colormath.Color] {
	if visited.Has(ref.name) {
		return r.value(scope, ref.fallback, visited)
	}
	visited.Add(ref.name)

	if def, ok := r.lookup(scope, ref.name).Get(); ok {
		return r.value(scope, def, visited)
	}
	return r.value(scope, ref.fallback, visited)
}

// value resolves text that is either a color or a var() reference
func (r *Resolver) value(scope ast.Container, text string, visited collections.Set[string]) mo.Option[colormath.Color] {
	text = strings.TrimSpace(text)
	if text == "" {
		return mo.None[colormath.Color]()
	}
	if ref, ok := parseReference(text); ok {
		return r.resolve(scope, ref, visited)
	}
	return r.Space.Parse(text)
}

// lookup walks outward from scope. In each scope only direct child
// declarations count, and the last usable one wins.
func (r *Resolver) lookup(scope ast.Container, name string) mo.Option[string] {
	for c := scope; c != nil; c = c.Parent() {
		if found := r.last(scopeDecls(c), name); found.IsPresent() {
			return found
		}
	}
	return mo.None[string]()
}

// scopeDecls lists the declarations belonging to c. Top-level :root rules
// are the document's own scope, so the root includes their declarations.
func scopeDecls(c ast.Container) []*ast.Decl {
	var decls []*ast.Decl
	_, isRoot := c.(*ast.Root)
	for _, n := range c.Nodes() {
		switch n := n.(type) {
		case *ast.Decl:
			decls = append(decls, n)
		case *ast.Rule:
			if isRoot && isRootSelector(n.Selector) {
				decls = append(decls, lo.FilterMap(n.Nodes(), func(child ast.Node, _ int) (*ast.Decl, bool) {
					d, ok := child.(*ast.Decl)
					return d, ok
				})...)
			}
		}
	}
	return decls
}

func isRootSelector(selector string) bool {
	return strings.TrimSpace(selector) == ":root"
}

func (r *Resolver) last(decls []*ast.Decl, name string) mo.Option[string] {
	found := mo.None[string]()
	for _, d := range decls {
		if d.Prop != name {
			continue
		}
		if v := strings.TrimSpace(d.Value); r.usable(v) {
			found = mo.Some(v)
		}
	}
	return found
}

func (r *Resolver) usable(value string) bool {
	if _, ok := parseReference(value); ok {
		return true
	}
	return r.Space.Parse(value).IsPresent()
}
