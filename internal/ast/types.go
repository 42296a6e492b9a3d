package ast

// Node is any element of a stylesheet tree
type Node interface {
	// Parent returns the enclosing scope, or nil for the root and for detached nodes
	Parent() Container
	setParent(Container)
}

// Container is a scope: a node that owns an ordered list of child nodes
type Container interface {
	Node
	// Nodes returns the children in source order. Callers must not mutate the slice.
	Nodes() []Node
	list() *[]Node
}

type base struct {
	parent Container
}

func (b *base) Parent() Container { return b.parent }

func (b *base) setParent(c Container) { b.parent = c }

type body struct {
	nodes []Node
}

func (b *body) Nodes() []Node { return b.nodes }

func (b *body) list() *[]Node { return &b.nodes }

// Root is the top of a stylesheet tree
type Root struct {
	body
}

// Parent always returns nil for the root
func (*Root) Parent() Container { return nil }

func (*Root) setParent(Container) {}

// Rule is a qualified rule: a selector and a block
type Rule struct {
	base
	body
	Selector string
}

// AtRule is an at-rule such as @media, @container or @mixin.
// Bodiless at-rules (e.g. @import) have HasBlock set to false.
type AtRule struct {
	base
	body
	Name     string
	Params   string
	HasBlock bool
}

// Decl is a declaration: property, value and an optional !important flag
type Decl struct {
	base
	Prop      string
	Value     string
	Important bool
}

// Comment is a /* ... */ comment, kept so the printer can reproduce it
type Comment struct {
	base
	Text string
}

// NewRoot creates an empty root
func NewRoot(nodes ...Node) *Root {
	r := &Root{}
	Append(r, nodes...)
	return r
}

// NewRule creates a rule with the given selector and children
func NewRule(selector string, nodes ...Node) *Rule {
	r := &Rule{Selector: selector}
	Append(r, nodes...)
	return r
}

// NewAtRule creates an at-rule with a block containing the given children
func NewAtRule(name, params string, nodes ...Node) *AtRule {
	a := &AtRule{Name: name, Params: params, HasBlock: true}
	Append(a, nodes...)
	return a
}

// NewDecl creates a detached declaration
func NewDecl(prop, value string) *Decl {
	return &Decl{Prop: prop, Value: value}
}

// NewComment creates a detached comment. Text excludes the /* */ markers.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}
