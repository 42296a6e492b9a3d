// Package composer resolves a passes list into an ordered pipeline and runs
// it over a declaration tree.
package composer

import (
	"fmt"
	"maps"
	"slices"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/colors"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/themes"
	"bennypowers.dev/csscomposer/internal/units"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Pass rewrites a tree in place
type Pass interface {
	Run(root *ast.Root)
}

// PassFunc adapts a function to Pass
type PassFunc func(root *ast.Root)

// Run calls f(root)
func (f PassFunc) Run(root *ast.Root) {
	f(root)
}

// Factory builds a pass from its options, which may be nil
type Factory func(options *yaml.Node) (Pass, error)

// Registry maps pass names to factories
type Registry map[string]Factory

// DefaultRegistry holds the built-in passes
func DefaultRegistry() Registry {
	return Registry{
		"colors": func(node *yaml.Node) (Pass, error) {
			var opts colors.Options
			if err := decode(node, &opts); err != nil {
				return nil, err
			}
			return colors.New(opts), nil
		},
		"themes": func(*yaml.Node) (Pass, error) {
			return PassFunc(themes.Expand), nil
		},
		"units": func(node *yaml.Node) (Pass, error) {
			var opts units.Options
			if err := decode(node, &opts); err != nil {
				return nil, err
			}
			return units.New(opts), nil
		},
	}
}

func decode(node *yaml.Node, out any) error {
	if node == nil {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Names lists the registered pass names, sorted
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

type stage struct {
	name string
	pass Pass
}

// Pipeline runs its passes strictly in order
type Pipeline struct {
	stages []stage
}

// New builds a pipeline from steps. Every step is checked before any pass
// runs; an unknown name or bad options is a *ConfigError.
func New(steps Steps, registry Registry) (*Pipeline, error) {
	p := &Pipeline{}
	for _, step := range steps {
		factory, ok := registry[step.Name]
		if !ok {
			return nil, &ConfigError{Pass: step.Name, Line: line(step.Options), Err: ErrUnknownPass}
		}
		pass, err := factory(step.Options)
		if err != nil {
			return nil, &ConfigError{Pass: step.Name, Line: line(step.Options), Err: err}
		}
		p.stages = append(p.stages, stage{name: step.Name, pass: pass})
	}
	return p, nil
}

func line(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Line
}

// Names lists the pass names in run order
func (p *Pipeline) Names() []string {
	return lo.Map(p.stages, func(s stage, _ int) string { return s.name })
}

// Run applies every pass to root
func (p *Pipeline) Run(root *ast.Root) {
	for _, s := range p.stages {
		log.Debug("Running %s pass", s.name)
		s.pass.Run(root)
	}
}
