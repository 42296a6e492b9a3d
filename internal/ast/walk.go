package ast

import "slices"

// Every walk snapshots a container's children before visiting them, so
// callbacks may insert or remove siblings without skipping or revisiting any.
// Nodes inserted during a walk are not visited; nodes removed before their
// turn are skipped.

// Walk visits every node below c in document order: ancestors before
// descendants, siblings in source order. Returning false from fn stops
// descent into that node's children.
func Walk(c Container, fn func(Node) bool) {
	for _, n := range slices.Clone(c.Nodes()) {
		if n.Parent() != c {
			continue
		}
		if !fn(n) {
			continue
		}
		if child, ok := n.(Container); ok {
			Walk(child, fn)
		}
	}
}

// WalkDecls visits every declaration below c in document order
func WalkDecls(c Container, fn func(*Decl)) {
	Walk(c, func(n Node) bool {
		if d, ok := n.(*Decl); ok {
			fn(d)
		}
		return true
	})
}

// WalkAtRules visits every at-rule below c named name, in document order.
// An empty name visits all at-rules.
func WalkAtRules(c Container, name string, fn func(*AtRule)) {
	Walk(c, func(n Node) bool {
		if a, ok := n.(*AtRule); ok && (name == "" || a.Name == name) {
			fn(a)
		}
		return true
	})
}

// WalkRules visits every qualified rule below c in document order
func WalkRules(c Container, fn func(*Rule)) {
	Walk(c, func(n Node) bool {
		if r, ok := n.(*Rule); ok {
			fn(r)
		}
		return true
	})
}

// Ancestors returns the scope chain of n, innermost first, ending at the root
func Ancestors(n Node) []Container {
	var chain []Container
	for c := n.Parent(); c != nil; c = c.Parent() {
		chain = append(chain, c)
	}
	return chain
}

// RootOf returns the root n belongs to, or nil when n is detached from any root
func RootOf(n Node) *Root {
	if r, ok := n.(*Root); ok {
		return r
	}
	chain := Ancestors(n)
	if len(chain) == 0 {
		return nil
	}
	r, _ := chain[len(chain)-1].(*Root)
	return r
}
