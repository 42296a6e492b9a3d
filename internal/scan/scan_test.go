package scan_test

import (
	"testing"

	"bennypowers.dev/csscomposer/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntil(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim byte
		token string
		rest  string
		found bool
	}{
		{"simple comma", "a, b", ',', "a", " b", true},
		{"nested comma skipped", "rgb(1, 2, 3), blue", ',', "rgb(1, 2, 3)", " blue", true},
		{"closing paren at depth zero", "a, b) tail", ')', "a, b", " tail", true},
		{"nested closing paren", "f(x)) tail", ')', "f(x)", " tail", true},
		{"no delimiter", "abc", ',', "abc", "", false},
		{"unterminated call consumes to end", "f(a, b", ',', "f(a, b", "", false},
		{"quoted delimiter ignored", `url("a,b"), c`, ',', `url("a,b")`, " c", true},
		{"escaped quote inside string", `"a\",b", c`, ',', `"a\",b"`, " c", true},
		{"stray closing paren does not go negative", "a) b, c", ',', "a) b", " c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, rest, found := scan.Until(tt.input, tt.delim)
			assert.Equal(t, tt.token, token)
			assert.Equal(t, tt.rest, rest)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", " b(c, d)", " e"}, scan.Split("a, b(c, d), e", ','))
	assert.Equal(t, []string{"16", "8"}, scan.Split("16 8", ' '))
	assert.Equal(t, []string{"solo"}, scan.Split("solo", ','))
	assert.True(t, scan.Contains("a b", ' '))
	assert.False(t, scan.Contains("f(a b)", ' '))
}

func TestFindCall(t *testing.T) {
	t.Run("finds call with balanced args", func(t *testing.T) {
		s := "1px themes(rgb(0 0 0), #fff) solid"
		call, ok := scan.FindCall(s, "themes", 0)
		require.True(t, ok)
		assert.Equal(t, 4, call.Start)
		assert.Equal(t, "rgb(0 0 0), #fff", call.Args)
		assert.Equal(t, " solid", s[call.End:])
		assert.True(t, call.Closed)
	})

	t.Run("respects identifier boundary", func(t *testing.T) {
		_, ok := scan.FindCall("rem(16)", "em", 0)
		assert.False(t, ok)

		call, ok := scan.FindCall("rem(16) em(8)", "em", 0)
		require.True(t, ok)
		assert.Equal(t, 8, call.Start)
		assert.Equal(t, "8", call.Args)
	})

	t.Run("unterminated call", func(t *testing.T) {
		s := "em(16"
		call, ok := scan.FindCall(s, "em", 0)
		require.True(t, ok)
		assert.False(t, call.Closed)
		assert.Equal(t, len(s), call.End)
		assert.Equal(t, "16", call.Args)
	})

	t.Run("from offset", func(t *testing.T) {
		call, ok := scan.FindCall("em(1) em(2)", "em", 1)
		require.True(t, ok)
		assert.Equal(t, "2", call.Args)
	})

	t.Run("earliest of several names", func(t *testing.T) {
		call, ok := scan.FindAnyCall("a scale(1) rem(2) em(3)", []string{"rem", "em", "scale"}, 0)
		require.True(t, ok)
		assert.Equal(t, "scale", call.Name)
	})
}

func TestHasWord(t *testing.T) {
	assert.True(t, scan.HasWord("themes(a, b)", "themes"))
	assert.True(t, scan.HasWord("1px solid themes", "themes"))
	assert.True(t, scan.HasWord("--themes-x", "themes"))
	assert.False(t, scan.HasWord("mythemes(a, b)", "themes"))
	assert.False(t, scan.HasWord("themes_x", "themes"))
	assert.False(t, scan.HasWord("", "themes"))
}
