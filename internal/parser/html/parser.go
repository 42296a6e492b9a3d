// Package html finds the CSS embedded in HTML documents: <style> element
// contents and style="..." attribute values.
package html

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser handles parsing HTML to extract CSS regions
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
		}
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
	}
}

// ParseCSSRegions extracts CSS regions from HTML source in document order
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	regions := p.capture(p.styleQuery, "css", StyleTag, root, sourceBytes, nil)
	regions = p.capture(p.attrQuery, "attr_value", StyleAttribute, root, sourceBytes, regions)

	slices.SortFunc(regions, func(a, b CSSRegion) int {
		return cmp.Compare(a.StartByte, b.StartByte)
	})
	return regions
}

// capture collects the nodes captured as name by query
func (p *Parser) capture(query *sitter.Query, name string, typ RegionType, root *sitter.Node, sourceBytes []byte, regions []CSSRegion) []CSSRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			if query.CaptureNames()[capture.Index] != name {
				continue
			}
			node := capture.Node
			regions = append(regions, CSSRegion{
				Content:   string(sourceBytes[node.StartByte():node.EndByte()]),
				StartByte: node.StartByte(),
				EndByte:   node.EndByte(),
				StartLine: node.StartPosition().Row,
				StartCol:  node.StartPosition().Column,
				Type:      typ,
			})
		}
	}
	return regions
}
