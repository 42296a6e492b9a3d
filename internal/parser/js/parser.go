// Package js finds css`...` and html`...` tagged template literals in
// JavaScript and TypeScript source.
package js

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// taggedTemplates matches css`...` calls and the generic css<T>`...` form,
// which the grammar reads as (css < T) > `...`
const taggedTemplates = `
(call_expression
	function: (identifier) @tag
	arguments: (template_string) @template)

(binary_expression
	left: (binary_expression
		left: (identifier) @tag)
	right: (template_string) @template)
`

// tags are the template tags whose contents hold styles
var tags = []string{"css", "html"}

// Parser finds tagged templates with a reusable tree-sitter parser
type Parser struct {
	parser *sitter.Parser
	query  *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}
		query, qerr := sitter.NewQuery(jsLang, taggedTemplates)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}
		return &Parser{parser: parser, query: query}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.query != nil {
		p.query.Close()
	}
}

// ParseTemplates lists the css and html tagged templates in source, in
// document order. TypeScript is read with the JavaScript grammar.
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []TemplateRegion
	names := p.query.CaptureNames()
	matches := cursor.Matches(p.query, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tag string
		var template *sitter.Node
		for _, c := range match.Captures {
			switch names[c.Index] {
			case "tag":
				tag = string(src[c.Node.StartByte():c.Node.EndByte()])
			case "template":
				node := c.Node
				template = &node
			}
		}
		if template == nil || !slices.Contains(tags, tag) {
			continue
		}
		regions = append(regions, templateRegion(tag, template, src))
	}

	slices.SortFunc(regions, func(a, b TemplateRegion) int {
		return cmp.Compare(a.StartByte, b.StartByte)
	})
	return regions
}

// templateRegion describes a template_string node. Segments are its
// string_fragment children; escape sequences between fragments stay in Raw.
func templateRegion(tag string, templateNode *sitter.Node, sourceBytes []byte) TemplateRegion {
	region := TemplateRegion{
		Tag:       tag,
		StartByte: templateNode.StartByte() + 1,
		EndByte:   templateNode.EndByte() - 1,
	}
	region.Raw = string(sourceBytes[region.StartByte:region.EndByte])

	for i := uint(0); i < templateNode.ChildCount(); i++ {
		child := templateNode.Child(i)
		switch child.Kind() {
		case "string_fragment":
			region.Segments = append(region.Segments, Segment{
				Content:   string(sourceBytes[child.StartByte():child.EndByte()]),
				StartLine: child.StartPosition().Row,
				StartCol:  child.StartPosition().Column,
			})
		case "template_substitution":
			region.Substitutions++
		}
	}

	return region
}
