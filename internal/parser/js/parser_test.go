package js_test

import (
	"os"
	"testing"

	"bennypowers.dev/csscomposer/internal/parser/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T, fixture string) (string, []js.TemplateRegion) {
	t.Helper()
	source, err := os.ReadFile(fixture)
	require.NoError(t, err)

	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)
	return string(source), parser.ParseTemplates(string(source))
}

func TestParseTemplates(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		wantTags []string
	}{
		{"lit element", "testdata/element.ts", []string{"css", "html"}},
		{"substitutions and other tags", "testdata/substitutions.js", []string{"css"}},
		{"generic tag", "testdata/generic.ts", []string{"css"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, regions := parseFixture(t, tt.fixture)

			var tags []string
			for _, r := range regions {
				tags = append(tags, r.Tag)
				assert.Equal(t, r.Raw, source[r.StartByte:r.EndByte], "byte range covers the raw text")
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}

func TestStaticTemplates(t *testing.T) {
	t.Run("no substitutions", func(t *testing.T) {
		_, regions := parseFixture(t, "testdata/element.ts")
		require.Len(t, regions, 2)
		assert.True(t, regions[0].Static())
		assert.Contains(t, regions[0].Raw, "padding: rem(16);")
		require.Len(t, regions[0].Segments, 1)
		assert.Equal(t, regions[0].Raw, regions[0].Segments[0].Content)
	})

	t.Run("substitutions split segments", func(t *testing.T) {
		_, regions := parseFixture(t, "testdata/substitutions.js")
		require.Len(t, regions, 1)
		assert.False(t, regions[0].Static())
		assert.Equal(t, 1, regions[0].Substitutions)
		require.Len(t, regions[0].Segments, 2)
		assert.Equal(t, "\n  .a { width: ", regions[0].Segments[0].Content)
		assert.Equal(t, "px; }\n", regions[0].Segments[1].Content)
	})
}

func TestSegmentPositions(t *testing.T) {
	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)

	regions := parser.ParseTemplates("const a = 1;\nconst s = css`.a{}`;")
	require.Len(t, regions, 1)
	seg := regions[0].Segments[0]
	assert.Equal(t, uint(1), seg.StartLine)
	assert.Equal(t, uint(14), seg.StartCol)
	assert.Equal(t, ".a{}", seg.Content)
}
