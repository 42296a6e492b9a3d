// Package colors resolves custom property colors inside color functions.
//
// An expression such as rgb(var(--brand) / 0.5) is replaced by the concrete
// color bound to --brand, converted to the function's color space:
//
//	:root { --brand: #336699; }
//	a { color: rgb(var(--brand) / 0.5); }
//
// becomes
//
//	a { color: rgb(51 102 153 / 0.5); }
//
// Expressions that cannot be resolved are left exactly as written.
package colors

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/colormath"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/scan"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	modeNames    = lo.Map(colormath.Modes, func(m colormath.Mode, _ int) string { return string(m) })
	alphaPattern = regexp.MustCompile(`^\s*(?:/\s*([\d.]+%?)\s*)?$`)
)

// Options configures the color pass
type Options struct {
	// Legacy switches to the older :root-only, hex-only resolver
	Legacy bool `yaml:"legacy"`
}

// Pass rewrites color expressions in declaration values
type Pass struct {
	opts     Options
	resolver *Resolver
}

// New creates a color pass
func New(opts Options) *Pass {
	space := colormath.Default
	if opts.Legacy {
		space = colormath.Legacy
	}
	return &Pass{opts: opts, resolver: &Resolver{Space: space}}
}

// Resolve runs the color pass over root with default options
func Resolve(root *ast.Root) {
	New(Options{}).Run(root)
}

// Run rewrites every declaration below root
func (p *Pass) Run(root *ast.Root) {
	if p.opts.Legacy {
		p.runLegacy(root)
		return
	}
	ast.WalkDecls(root, func(d *ast.Decl) {
		d.Value = p.Value(d)
	})
}

// expression is one <mode>(var(--name[, fallback])[ / alpha]) call
type expression struct {
	mode  colormath.Mode
	ref   reference
	alpha mo.Option[float64]
}

func parseExpression(call scan.Call) (expression, bool) {
	mode, ok := colormath.ParseMode(call.Name)
	if !ok || !call.Closed {
		return expression{}, false
	}
	v, ok := scan.FindCall(call.Args, "var", 0)
	if !ok || v.Start != 0 || !v.Closed {
		return expression{}, false
	}
	ref, ok := parseReference(call.Args[:v.End])
	if !ok {
		return expression{}, false
	}
	m := alphaPattern.FindStringSubmatch(call.Args[v.End:])
	if m == nil {
		return expression{}, false
	}
	alpha, ok := parseAlpha(m[1])
	if !ok {
		return expression{}, false
	}
	return expression{mode: mode, ref: ref, alpha: alpha}, true
}

// parseAlpha reads a number or percentage; empty text means no alpha term
func parseAlpha(s string) (mo.Option[float64], bool) {
	if s == "" {
		return mo.None[float64](), true
	}
	pct := strings.HasSuffix(s, "%")
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return mo.None[float64](), false
	}
	if pct {
		n /= 100
	}
	return mo.Some(n), true
}

// Value returns d's value with every resolvable color expression replaced
func (p *Pass) Value(d *ast.Decl) string {
	value := d.Value
	var b strings.Builder
	written, from := 0, 0
	for {
		call, ok := scan.FindAnyCall(value, modeNames, from)
		if !ok {
			break
		}
		expr, ok := parseExpression(call)
		if !ok {
			// look for expressions nested in the arguments
			from = call.Start + len(call.Name) + 1
			continue
		}
		original := value[call.Start:call.End]
		b.WriteString(value[written:call.Start])
		b.WriteString(p.replace(d.Parent(), expr, original))
		written, from = call.End, call.End
	}
	if written == 0 {
		return value
	}
	b.WriteString(value[written:])
	return b.String()
}

func (p *Pass) replace(scope ast.Container, expr expression, original string) string {
	color, ok := p.resolver.Resolve(scope, expr.ref.name, expr.ref.fallback).Get()
	if !ok {
		log.Debug("Leaving %s: %s does not resolve to a color", original, expr.ref.name)
		return original
	}
	if a, ok := expr.alpha.Get(); ok {
		color = color.WithAlpha(a)
	}
	out, err := colormath.Serialize(p.resolver.Space, color, expr.mode)
	if err != nil {
		log.Debug("Leaving %s: %v", original, err)
		return original
	}
	return out
}
