package ast_test

import (
	"testing"

	"bennypowers.dev/csscomposer/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() (*ast.Root, *ast.Rule, *ast.Decl) {
	color := ast.NewDecl("color", "red")
	rule := ast.NewRule(".a", color, ast.NewDecl("margin", "0"))
	root := ast.NewRoot(
		ast.NewRule(":root", ast.NewDecl("--brand", "#336699")),
		rule,
	)
	return root, rule, color
}

func TestParentChain(t *testing.T) {
	root, rule, color := buildTree()

	assert.Equal(t, ast.Container(rule), color.Parent())
	assert.Equal(t, ast.Container(root), rule.Parent())
	assert.Nil(t, root.Parent())

	chain := ast.Ancestors(color)
	require.Len(t, chain, 2)
	assert.Same(t, rule, chain[0])
	assert.Same(t, root, chain[1])
	assert.Same(t, root, ast.RootOf(color))
}

func TestInsertAndRemove(t *testing.T) {
	t.Run("insert after keeps order", func(t *testing.T) {
		_, rule, color := buildTree()
		a := ast.NewDecl("a", "1")
		b := ast.NewDecl("b", "2")
		require.True(t, ast.InsertAfter(color, a, b))

		nodes := rule.Nodes()
		require.Len(t, nodes, 4)
		assert.Same(t, color, nodes[0])
		assert.Same(t, a, nodes[1])
		assert.Same(t, b, nodes[2])
		assert.Equal(t, ast.Container(rule), a.Parent())
	})

	t.Run("remove detaches", func(t *testing.T) {
		_, rule, color := buildTree()
		require.True(t, ast.Remove(color))
		assert.Nil(t, color.Parent())
		assert.Len(t, rule.Nodes(), 1)
		assert.False(t, ast.Remove(color), "second remove is a no-op")
	})

	t.Run("insert into detached node fails", func(t *testing.T) {
		assert.False(t, ast.InsertAfter(ast.NewDecl("x", "y"), ast.NewDecl("a", "b")))
	})

	t.Run("append moves node between parents", func(t *testing.T) {
		root, rule, color := buildTree()
		other := ast.NewRule(".b")
		ast.Append(root, other)
		ast.Append(other, color)

		assert.Len(t, rule.Nodes(), 1)
		assert.Equal(t, ast.Container(other), color.Parent())
	})

	t.Run("replace", func(t *testing.T) {
		_, rule, color := buildTree()
		repl := ast.NewDecl("color", "blue")
		require.True(t, ast.Replace(color, repl))
		assert.Same(t, repl, rule.Nodes()[0])
		assert.Nil(t, color.Parent())
	})
}

func TestWalkDeclsDocumentOrder(t *testing.T) {
	root := ast.NewRoot(
		ast.NewDecl("a", "1"),
		ast.NewRule(".x",
			ast.NewDecl("b", "2"),
			ast.NewAtRule("media", "(width >= 40em)", ast.NewDecl("c", "3")),
			ast.NewDecl("d", "4"),
		),
		ast.NewDecl("e", "5"),
	)

	var seen []string
	ast.WalkDecls(root, func(d *ast.Decl) {
		seen = append(seen, d.Prop)
	})
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
}

func TestWalkSnapshotsChildren(t *testing.T) {
	t.Run("inserted siblings are not visited", func(t *testing.T) {
		root := ast.NewRoot(ast.NewDecl("a", "1"), ast.NewDecl("b", "2"))
		var seen []string
		ast.WalkDecls(root, func(d *ast.Decl) {
			seen = append(seen, d.Prop)
			ast.InsertAfter(d, ast.NewDecl(d.Prop+"-copy", d.Value))
		})
		assert.Equal(t, []string{"a", "b"}, seen)
		assert.Len(t, root.Nodes(), 4)
	})

	t.Run("removing current node does not skip the next", func(t *testing.T) {
		root := ast.NewRoot(ast.NewDecl("a", "1"), ast.NewDecl("b", "2"), ast.NewDecl("c", "3"))
		var seen []string
		ast.WalkDecls(root, func(d *ast.Decl) {
			seen = append(seen, d.Prop)
			ast.Remove(d)
		})
		assert.Equal(t, []string{"a", "b", "c"}, seen)
		assert.Empty(t, root.Nodes())
	})

	t.Run("nodes removed before their turn are skipped", func(t *testing.T) {
		c := ast.NewDecl("c", "3")
		root := ast.NewRoot(ast.NewDecl("a", "1"), c)
		var seen []string
		ast.WalkDecls(root, func(d *ast.Decl) {
			seen = append(seen, d.Prop)
			ast.Remove(c)
		})
		assert.Equal(t, []string{"a"}, seen)
	})
}

func TestWalkAtRules(t *testing.T) {
	root := ast.NewRoot(
		ast.NewAtRule("media", "print"),
		ast.NewRule(".x", ast.NewAtRule("container", "(width > 1px)", ast.NewAtRule("media", "screen"))),
	)

	var media []string
	ast.WalkAtRules(root, "media", func(a *ast.AtRule) {
		media = append(media, a.Params)
	})
	assert.Equal(t, []string{"print", "screen"}, media)

	var all []string
	ast.WalkAtRules(root, "", func(a *ast.AtRule) {
		all = append(all, a.Name)
	})
	assert.Equal(t, []string{"media", "container", "media"}, all)
}

func TestPrint(t *testing.T) {
	important := ast.NewDecl("color", "red")
	important.Important = true
	root := ast.NewRoot(
		ast.NewComment(" tokens "),
		&ast.AtRule{Name: "import", Params: `"base.css"`},
		ast.NewRule(".a",
			important,
			ast.NewAtRule("mixin", "dark", ast.NewDecl("color", "blue")),
		),
		ast.NewRule(".empty"),
	)

	expected := `/* tokens */
@import "base.css";
.a {
  color: red !important;
  @mixin dark {
    color: blue;
  }
}
.empty {}
`
	assert.Equal(t, expected, root.String())
	assert.Equal(t, "color: red !important", important.String())
}
