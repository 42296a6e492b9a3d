package html_test

import (
	"os"
	"testing"

	"bennypowers.dev/csscomposer/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSSRegions(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		wantTypes []html.RegionType
	}{
		{
			name:      "style tag",
			fixture:   "testdata/style-tag.html",
			wantTypes: []html.RegionType{html.StyleTag},
		},
		{
			name:      "style attributes",
			fixture:   "testdata/style-attribute.html",
			wantTypes: []html.RegionType{html.StyleAttribute, html.StyleAttribute},
		},
		{
			name:    "multiple styles in document order",
			fixture: "testdata/multiple-styles.html",
			wantTypes: []html.RegionType{
				html.StyleTag, html.StyleAttribute, html.StyleTag, html.StyleAttribute,
			},
		},
		{
			name:    "no CSS",
			fixture: "testdata/no-css.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := os.ReadFile(tt.fixture)
			require.NoError(t, err)

			parser := html.AcquireParser()
			defer html.ReleaseParser(parser)

			regions := parser.ParseCSSRegions(string(source))

			var types []html.RegionType
			for _, r := range regions {
				types = append(types, r.Type)
				assert.Equal(t, r.Content, string(source[r.StartByte:r.EndByte]), "byte range covers content")
			}
			assert.Equal(t, tt.wantTypes, types)
		})
	}
}

func TestRegionContent(t *testing.T) {
	source := `<p style="color: red">x</p><style>.a{margin:0}</style>`

	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	regions := parser.ParseCSSRegions(source)
	require.Len(t, regions, 2)

	assert.Equal(t, "color: red", regions[0].Content)
	assert.Equal(t, uint(10), regions[0].StartByte)
	assert.Equal(t, uint(0), regions[0].StartLine)
	assert.Equal(t, uint(10), regions[0].StartCol)

	assert.Equal(t, ".a{margin:0}", regions[1].Content)
	assert.Equal(t, "style tag", regions[1].Type.String())
}
