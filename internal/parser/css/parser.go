// Package css loads stylesheet source into a declaration tree using
// tree-sitter-css.
package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/csscomposer/internal/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
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
}

// Parse loads source with a pooled parser
func Parse(source string) (*ast.Root, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Parse(source)
}

// Parse loads CSS source into a tree. Source with syntax errors is rejected
// with a *SyntaxError rather than partially loaded. The parameters of
// @media and @container rules are taken verbatim and never rejected.
func (p *Parser) Parse(source string) (*ast.Root, error) {
	src := []byte(source)
	tree := p.parser.Parse(maskPreludes(src), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	node := tree.RootNode()
	if node.HasError() {
		return nil, firstError(node)
	}

	root := ast.NewRoot()
	l := loader{src: src}
	if err := l.children(node, root); err != nil {
		return nil, err
	}
	return root, nil
}

// firstError finds the earliest error or missing node
func firstError(node *sitter.Node) error {
	if node.IsError() || node.IsMissing() {
		pos := node.StartPosition()
		return &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: node.Kind()}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			return firstError(child)
		}
	}
	pos := node.StartPosition()
	return &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: node.Kind()}
}

type loader struct {
	src []byte
}

func (l *loader) text(n *sitter.Node) string {
	return string(l.src[n.StartByte():n.EndByte()])
}

func (l *loader) between(start, end uint) string {
	if end < start {
		return ""
	}
	return strings.TrimSpace(string(l.src[start:end]))
}

// children loads the statements of a stylesheet, block or keyframe list into c
func (l *loader) children(node *sitter.Node, c ast.Container) error {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		n, err := l.node(child)
		if err != nil {
			return err
		}
		if n != nil {
			ast.Append(c, n)
		}
	}
	return nil
}

func (l *loader) node(n *sitter.Node) (ast.Node, error) {
	switch kind := n.Kind(); {
	case kind == "declaration":
		return l.declaration(n), nil
	case kind == "rule_set":
		return l.ruleSet(n)
	case kind == "keyframe_block":
		return l.keyframeBlock(n)
	case kind == "comment":
		text := l.text(n)
		return ast.NewComment(strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")), nil
	case kind == "at_rule" || strings.HasSuffix(kind, "_statement"):
		return l.atRule(n)
	default:
		pos := n.StartPosition()
		return nil, &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: kind}
	}
}

func (l *loader) declaration(n *sitter.Node) *ast.Decl {
	var prop string
	important := false
	valueStart, valueEnd := n.EndByte(), n.EndByte()
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "property_name":
			prop = l.text(child)
		case ":":
			if valueStart == n.EndByte() {
				valueStart = child.EndByte()
			}
		case "important":
			important = true
			valueEnd = min(valueEnd, child.StartByte())
		case ";":
			valueEnd = min(valueEnd, child.StartByte())
		}
	}
	d := ast.NewDecl(prop, l.between(valueStart, valueEnd))
	d.Important = important
	return d
}

func (l *loader) ruleSet(n *sitter.Node) (ast.Node, error) {
	block := childOfKind(n, "block")
	if block == nil {
		pos := n.StartPosition()
		return nil, &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: "rule_set"}
	}
	selector := l.between(n.StartByte(), block.StartByte())
	if s := childOfKind(n, "selectors"); s != nil {
		selector = strings.TrimSpace(l.text(s))
	}
	rule := ast.NewRule(selector)
	return rule, l.children(block, rule)
}

func (l *loader) keyframeBlock(n *sitter.Node) (ast.Node, error) {
	block := childOfKind(n, "block")
	if block == nil {
		pos := n.StartPosition()
		return nil, &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: "keyframe_block"}
	}
	rule := ast.NewRule(l.between(n.StartByte(), block.StartByte()))
	return rule, l.children(block, rule)
}

// atRule handles every at-rule shape: the keyword is the first child, the
// parameters run up to a block, a keyframe list or the closing semicolon
func (l *loader) atRule(n *sitter.Node) (ast.Node, error) {
	keyword := n.Child(0)
	if keyword == nil {
		pos := n.StartPosition()
		return nil, &SyntaxError{Line: pos.Row, Column: pos.Column, Kind: n.Kind()}
	}
	name := strings.TrimPrefix(l.text(keyword), "@")

	var body *sitter.Node
	paramsEnd := n.EndByte()
	for i := uint(1); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "block", "keyframe_block_list":
			body = child
		case ";":
		default:
			continue
		}
		paramsEnd = child.StartByte()
		break
	}

	a := ast.NewAtRule(name, l.between(keyword.EndByte(), paramsEnd))
	if body == nil {
		a.HasBlock = false
		return a, nil
	}
	return a, l.children(body, a)
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
