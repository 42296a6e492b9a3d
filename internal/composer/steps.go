package composer

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Step names a pass and carries its undecoded options
type Step struct {
	Name string
	// Options is nil when the entry gave none
	Options *yaml.Node
}

// Steps is an ordered passes list. It decodes from any of
//
//	passes: units
//	passes: [colors, [units, {scalePixels: true}], {themes: null}]
//	passes: {colors: {legacy: true}, units: {}}
//
// A mapping with several keys contributes one step per key, in order.
type Steps []Step

// DefaultSteps runs every pass with default options
func DefaultSteps() Steps {
	return Steps{{Name: "colors"}, {Name: "themes"}, {Name: "units"}}
}

// ParseSteps reads a comma-separated list of pass names
func ParseSteps(list string) Steps {
	names := lo.Compact(lo.Map(strings.Split(list, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	return lo.Map(names, func(name string, _ int) Step { return Step{Name: name} })
}

// Names lists the pass names in order
func (s Steps) Names() []string {
	return lo.Map(s, func(step Step, _ int) string { return step.Name })
}

// UnmarshalYAML normalizes every accepted passes shape into a flat list
func (s *Steps) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.SequenceNode:
		steps := Steps{}
		for _, entry := range node.Content {
			entrySteps, err := decodeEntry(entry)
			if err != nil {
				return err
			}
			steps = append(steps, entrySteps...)
		}
		*s = steps
		return nil
	case yaml.ScalarNode, yaml.MappingNode:
		steps, err := decodeEntry(node)
		if err != nil {
			return err
		}
		*s = steps
		return nil
	default:
		return &ConfigError{Line: node.Line, Err: fmt.Errorf("%w: passes must be a list", ErrInvalidStep)}
	}
}

func decodeEntry(node *yaml.Node) (Steps, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return nil, &ConfigError{Line: node.Line, Err: fmt.Errorf("%w: empty pass name", ErrInvalidStep)}
		}
		return Steps{{Name: node.Value}}, nil

	case yaml.SequenceNode:
		if len(node.Content) != 2 || resolveAlias(node.Content[0]).Kind != yaml.ScalarNode {
			return nil, &ConfigError{Line: node.Line, Err: fmt.Errorf("%w: expected [name, options]", ErrInvalidStep)}
		}
		name := resolveAlias(node.Content[0]).Value
		return Steps{{Name: name, Options: options(node.Content[1])}}, nil

	case yaml.MappingNode:
		var steps Steps
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			steps = append(steps, Step{Name: key.Value, Options: options(node.Content[i+1])})
		}
		return steps, nil

	default:
		return nil, &ConfigError{Line: node.Line, Err: ErrInvalidStep}
	}
}

// options drops explicit nulls so passes see them as absent
func options(node *yaml.Node) *yaml.Node {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	return node
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
