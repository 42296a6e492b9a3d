package themes_test

import (
	"testing"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		value string
		light string
		dark  string
	}{
		{"single macro", "themes(#000, #fff)", "#000", "#fff"},
		{"prefix and suffix", "1px solid themes(black, white) inset", "1px solid black inset", "1px solid white inset"},
		{"nested function arguments", "themes(rgb(0 0 0 / 50%), hsl(0 0% 100%))", "rgb(0 0 0 / 50%)", "hsl(0 0% 100%)"},
		{"repeated macro in suffix", "themes(a, b) themes(c, d)", "a c", "b d"},
		{"nested macro in branch", "themes(themes(a, x), b)", "a", "b"},
		{"no macro call", "red", "red", "red"},
		{"bare word without call", "themes", "themes", "themes"},
		{"missing dark branch", "themes(a)", "a", ""},
		{"unterminated call", "themes(a, b", "a", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light, dark := themes.Resolve(tt.value)
			assert.Equal(t, tt.light, light)
			assert.Equal(t, tt.dark, dark)
		})
	}
}

func TestExpand(t *testing.T) {
	t.Run("replaces declaration with light value and dark block", func(t *testing.T) {
		rule := ast.NewRule(".card",
			ast.NewDecl("padding", "1rem"),
			ast.NewDecl("color", "themes(#000, #fff)"),
			ast.NewDecl("margin", "0"),
		)
		root := ast.NewRoot(rule)

		themes.Expand(root)

		nodes := rule.Nodes()
		require.Len(t, nodes, 4)

		light, ok := nodes[1].(*ast.Decl)
		require.True(t, ok, "light declaration takes the original position")
		assert.Equal(t, "color", light.Prop)
		assert.Equal(t, "#000", light.Value)

		block, ok := nodes[2].(*ast.AtRule)
		require.True(t, ok, "dark block follows immediately")
		assert.Equal(t, "mixin", block.Name)
		assert.Equal(t, "dark", block.Params)
		require.Len(t, block.Nodes(), 1)
		dark := block.Nodes()[0].(*ast.Decl)
		assert.Equal(t, "color", dark.Prop)
		assert.Equal(t, "#fff", dark.Value)

		assert.Equal(t, "margin", nodes[3].(*ast.Decl).Prop)
	})

	t.Run("original declaration is gone", func(t *testing.T) {
		orig := ast.NewDecl("color", "themes(a, b)")
		root := ast.NewRoot(ast.NewRule(".x", orig))

		themes.Expand(root)

		assert.Nil(t, orig.Parent())
		var values []string
		ast.WalkDecls(root, func(d *ast.Decl) { values = append(values, d.Value) })
		assert.Equal(t, []string{"a", "b"}, values)
	})

	t.Run("keeps important flag", func(t *testing.T) {
		orig := ast.NewDecl("color", "themes(a, b)")
		orig.Important = true
		rule := ast.NewRule(".x", orig)
		themes.Expand(ast.NewRoot(rule))

		assert.True(t, rule.Nodes()[0].(*ast.Decl).Important)
		block := rule.Nodes()[1].(*ast.AtRule)
		assert.True(t, block.Nodes()[0].(*ast.Decl).Important)
	})

	t.Run("leaves values without the word untouched", func(t *testing.T) {
		orig := ast.NewDecl("color", "mythemes(a, b)")
		rule := ast.NewRule(".x", orig)
		themes.Expand(ast.NewRoot(rule))

		require.Len(t, rule.Nodes(), 1)
		assert.Same(t, orig, rule.Nodes()[0])
		assert.Equal(t, "mythemes(a, b)", orig.Value)
	})

	t.Run("expands each declaration exactly once", func(t *testing.T) {
		rule := ast.NewRule(".x",
			ast.NewDecl("color", "themes"),
			ast.NewDecl("background", "themes(a, b)"),
		)
		themes.Expand(ast.NewRoot(rule))

		expected := `.x {
  color: themes;
  @mixin dark {
    color: themes;
  }
  background: a;
  @mixin dark {
    background: b;
  }
}
`
		assert.Equal(t, expected, rule.String())
	})
}
