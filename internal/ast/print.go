package ast

import (
	"strings"
)

const indentUnit = "  "

// String serializes the tree as CSS, one node per line with two-space indentation
func (r *Root) String() string {
	var b strings.Builder
	writeNodes(&b, r.nodes, 0)
	return b.String()
}

// String serializes the rule and its children
func (r *Rule) String() string {
	var b strings.Builder
	writeNode(&b, r, 0)
	return b.String()
}

// String serializes the at-rule and its children
func (a *AtRule) String() string {
	var b strings.Builder
	writeNode(&b, a, 0)
	return b.String()
}

// String serializes the declaration without a trailing newline
func (d *Decl) String() string {
	var b strings.Builder
	writeDecl(&b, d)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		writeNode(b, n, depth)
	}
}

func writeNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch n := n.(type) {
	case *Decl:
		b.WriteString(indent)
		writeDecl(b, n)
		b.WriteString(";\n")
	case *Comment:
		b.WriteString(indent)
		b.WriteString("/*")
		b.WriteString(n.Text)
		b.WriteString("*/\n")
	case *Rule:
		b.WriteString(indent)
		b.WriteString(n.Selector)
		writeBlock(b, n.nodes, depth)
	case *AtRule:
		b.WriteString(indent)
		b.WriteByte('@')
		b.WriteString(n.Name)
		if n.Params != "" {
			b.WriteByte(' ')
			b.WriteString(n.Params)
		}
		if !n.HasBlock {
			b.WriteString(";\n")
			return
		}
		writeBlock(b, n.nodes, depth)
	}
}

func writeBlock(b *strings.Builder, nodes []Node, depth int) {
	if len(nodes) == 0 {
		b.WriteString(" {}\n")
		return
	}
	b.WriteString(" {\n")
	writeNodes(b, nodes, depth+1)
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("}\n")
}

func writeDecl(b *strings.Builder, d *Decl) {
	b.WriteString(d.Prop)
	b.WriteString(": ")
	b.WriteString(d.Value)
	if d.Important {
		b.WriteString(" !important")
	}
}
