package ast

import "slices"

// Append adds nodes to the end of c, detaching them from any previous parent
func Append(c Container, nodes ...Node) {
	for _, n := range nodes {
		detach(n)
		n.setParent(c)
	}
	l := c.list()
	*l = append(*l, nodes...)
}

// Index returns the position of n among its parent's children, or -1 when detached
func Index(n Node) int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	return slices.Index(p.Nodes(), n)
}

// InsertAfter inserts nodes immediately after ref, in order.
// Returns false when ref is detached.
func InsertAfter(ref Node, nodes ...Node) bool {
	return insertAt(ref, 1, nodes)
}

// InsertBefore inserts nodes immediately before ref, in order.
// Returns false when ref is detached.
func InsertBefore(ref Node, nodes ...Node) bool {
	return insertAt(ref, 0, nodes)
}

func insertAt(ref Node, offset int, nodes []Node) bool {
	p := ref.Parent()
	if p == nil {
		return false
	}
	for _, n := range nodes {
		detach(n)
		n.setParent(p)
	}
	// ref may have moved if one of nodes was its sibling
	i := Index(ref)
	l := p.list()
	*l = slices.Insert(*l, i+offset, nodes...)
	return true
}

// Remove detaches n from its parent. Returns false when n was already detached.
func Remove(n Node) bool {
	if n.Parent() == nil {
		return false
	}
	detach(n)
	return true
}

// Replace puts nodes in place of n and detaches n
func Replace(n Node, nodes ...Node) bool {
	if !InsertAfter(n, nodes...) {
		return false
	}
	return Remove(n)
}

func detach(n Node) {
	p := n.Parent()
	if p == nil {
		return
	}
	l := p.list()
	if i := slices.Index(*l, n); i >= 0 {
		*l = slices.Delete(*l, i, i+1)
	}
	n.setParent(nil)
}
