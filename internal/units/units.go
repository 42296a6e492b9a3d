// Package units rewrites pixel lengths into relative units.
//
// Three rewrites run over a tree, in order:
//
//   - unit functions in declaration values: rem(16) -> 1rem, em(32) -> 2em,
//     scale(16, 2) -> calc(1rem * 2);
//   - bare pixel literals in declaration values: 24px -> 1.5rem;
//   - rem() and em() calls in @media and @container parameters.
package units

import (
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/scan"
)

const (
	remFunc   = "rem"
	emFunc    = "em"
	scaleFunc = "scale"
)

var (
	valueFuncs     = []string{remFunc, emFunc, scaleFunc}
	conditionFuncs = []string{remFunc, emFunc}
	// conditionAtRules carry size conditions whose parameters are converted
	conditionAtRules = []string{"media", "container"}
)

// Options configures the unit passes
type Options struct {
	// ScalePixels wraps lengths produced from bare px literals in the default scaling form
	ScalePixels bool `yaml:"scalePixels"`
	// ScaleProperty is the custom property read by scale() without a factor
	ScaleProperty string `yaml:"scaleProperty"`
	// NumericFactorsOnly leaves scale() calls with symbolic factors unchanged
	NumericFactorsOnly bool `yaml:"numericFactorsOnly"`
}

// Pass runs the unit rewrites with a fixed set of options
type Pass struct {
	opts  Options
	rem   Converter
	em    Converter
	pixel Converter
}

// New creates the unit passes
func New(opts Options) *Pass {
	if opts.ScaleProperty == "" {
		opts.ScaleProperty = DefaultScaleProperty
	}
	rem := NewConverter(Rem)
	rem.Factor = DefaultFactor(opts.ScaleProperty)

	pixel := rem
	pixel.Transform = false
	pixel.Scaling = opts.ScalePixels

	return &Pass{
		opts:  opts,
		rem:   rem,
		em:    NewConverter(Em),
		pixel: pixel,
	}
}

// Convert runs all three rewrites over root with default options
func Convert(root *ast.Root) {
	New(Options{}).Run(root)
}

// Run runs the unit function, pixel and condition rewrites over root
func (p *Pass) Run(root *ast.Root) {
	ast.WalkDecls(root, func(d *ast.Decl) {
		d.Value = p.Functions(d.Value)
	})
	ast.WalkDecls(root, func(d *ast.Decl) {
		if d.Prop == "content" {
			return
		}
		d.Value = p.Pixels(d.Value)
	})
	for _, name := range conditionAtRules {
		ast.WalkAtRules(root, name, func(a *ast.AtRule) {
			a.Params = p.Condition(a.Params)
		})
	}
}

// Functions replaces rem(), em() and scale() calls in a declaration value
func (p *Pass) Functions(value string) string {
	return p.expand(value, valueFuncs)
}

// Condition replaces rem() and em() calls in at-rule parameters.
// scale() is left alone: a scaling variable means nothing in a one-shot
// condition evaluation.
func (p *Pass) Condition(params string) string {
	return p.expand(params, conditionFuncs)
}

// expand replaces unit calls innermost first, so an argument that is itself
// a unit call is converted before its caller sees it
func (p *Pass) expand(value string, names []string) string {
	var b strings.Builder
	i := 0
	for {
		call, ok := scan.FindAnyCall(value, names, i)
		if !ok {
			break
		}
		b.WriteString(value[i:call.Start])
		if call.Closed {
			args := p.expand(call.Args, names)
			b.WriteString(p.apply(call.Name, args, call.Name+"("+args+")"))
		} else {
			b.WriteString(value[call.Start:call.End])
		}
		i = call.End
	}
	b.WriteString(value[i:])
	return b.String()
}

// apply converts one call. A length argument that is itself an opaque
// expression keeps the call, so the unit it asks for is not lost.
func (p *Pass) apply(name, args, original string) string {
	switch name {
	case remFunc, emFunc:
		if opaque(args) {
			log.Debug("Leaving %s: opaque argument", original)
			return original
		}
		if name == remFunc {
			return p.rem.Convert(args)
		}
		return p.em.Convert(args)
	case scaleFunc:
		return p.scale(args, original)
	}
	return original
}

func opaque(arg string) bool {
	return unsafePattern.MatchString(strings.TrimSpace(arg))
}

// scale handles scale(<length>[, <factor>])
func (p *Pass) scale(args, original string) string {
	parts := scan.Split(args, ',')
	factor := p.rem.Factor
	switch len(parts) {
	case 1:
	case 2:
		f, ok := p.Factor(parts[1])
		if !ok {
			log.Debug("Leaving %s: unrecognized scale factor", original)
			return original
		}
		factor = f
	default:
		log.Debug("Leaving %s: too many arguments", original)
		return original
	}
	if opaque(parts[0]) {
		log.Debug("Leaving %s: opaque argument", original)
		return original
	}
	return p.rem.WithScaling(factor).Convert(parts[0])
}

// Factor turns a scale() factor argument into a multiplier expression.
// Numbers and expressions are inlined; names become a custom property
// lookup defaulting to 1.
func (p *Pass) Factor(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", false
	}
	if numberPattern.MatchString(arg) || strings.Contains(arg, "(") {
		return arg, true
	}
	if p.opts.NumericFactorsOnly {
		return "", false
	}
	prop := FactorProperty(arg)
	if prop == "" {
		return "", false
	}
	return DefaultFactor(prop), true
}
