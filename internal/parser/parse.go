// Package parser finds the stylesheet text in CSS, HTML and JS/TS documents
// and splices rewritten text back into them.
package parser

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/csscomposer/internal/parser/html"
	"bennypowers.dev/csscomposer/internal/parser/js"
	"go.uber.org/multierr"
)

// Language is the parser category a document uses
type Language string

const (
	Unknown Language = ""
	CSS     Language = "css"
	HTML    Language = "html"
	JS      Language = "js"
)

// extensions maps file extensions to the parser category they use
var extensions = map[string]Language{
	".css":  CSS,
	".html": HTML,
	".htm":  HTML,
	".js":   JS,
	".mjs":  JS,
	".cjs":  JS,
	".jsx":  JS,
	".ts":   JS,
	".mts":  JS,
	".tsx":  JS,
}

// languageIDs maps editor language IDs to the parser category they use
var languageIDs = map[string]Language{
	"css":             CSS,
	"html":            HTML,
	"javascript":      JS,
	"javascriptreact": JS,
	"typescript":      JS,
	"typescriptreact": JS,
}

// DetectLanguage picks the parser category from a file name
func DetectLanguage(path string) Language {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// LanguageFromID picks the parser category from a language ID such as
// "typescript"
func LanguageFromID(id string) Language {
	return languageIDs[id]
}

// FragmentKind says what grammar a fragment's text follows
type FragmentKind int

const (
	// Stylesheet text is a list of rules and at-rules
	Stylesheet FragmentKind = iota
	// Declarations text is a bare declaration list, as in style="..."
	Declarations
)

func (k FragmentKind) String() string {
	switch k {
	case Stylesheet:
		return "stylesheet"
	case Declarations:
		return "declarations"
	default:
		return fmt.Sprintf("FragmentKind(%d)", int(k))
	}
}

// Fragment is a span of stylesheet text within a document
type Fragment struct {
	Kind      FragmentKind
	Text      string
	StartByte uint
	EndByte   uint
	// StartLine is 0-indexed
	StartLine uint
}

// RewriteFunc returns the replacement for a fragment's text
type RewriteFunc func(Fragment) (string, error)

// Fragments lists the stylesheet text in content in document order.
// JS templates with ${...} expressions are skipped; html templates are
// searched for <style> elements and style attributes.
func Fragments(content string, lang Language) []Fragment {
	switch lang {
	case CSS:
		return []Fragment{{Kind: Stylesheet, Text: content, EndByte: uint(len(content))}}

	case HTML:
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		regions := p.ParseCSSRegions(content)
		fragments := make([]Fragment, 0, len(regions))
		for _, r := range regions {
			kind := Stylesheet
			if r.Type == html.StyleAttribute {
				kind = Declarations
			}
			fragments = append(fragments, Fragment{
				Kind:      kind,
				Text:      r.Content,
				StartByte: r.StartByte,
				EndByte:   r.EndByte,
				StartLine: r.StartLine,
			})
		}
		return fragments

	case JS:
		p := js.AcquireParser()
		templates := p.ParseTemplates(content)
		js.ReleaseParser(p)

		var fragments []Fragment
		for _, tmpl := range templates {
			if !tmpl.Static() {
				continue
			}
			var line uint
			if len(tmpl.Segments) > 0 {
				line = tmpl.Segments[0].StartLine
			}
			switch tmpl.Tag {
			case "css":
				fragments = append(fragments, Fragment{
					Kind:      Stylesheet,
					Text:      tmpl.Raw,
					StartByte: tmpl.StartByte,
					EndByte:   tmpl.EndByte,
					StartLine: line,
				})
			case "html":
				for _, f := range Fragments(tmpl.Raw, HTML) {
					f.StartByte += tmpl.StartByte
					f.EndByte += tmpl.StartByte
					f.StartLine += line
					fragments = append(fragments, f)
				}
			}
		}
		return fragments

	default:
		return nil
	}
}

// Rewrite replaces every fragment of content with the text fn returns for
// it. A fragment whose fn fails is left as it was; the errors are combined
// and returned alongside the partially rewritten content.
func Rewrite(content string, lang Language, fn RewriteFunc) (string, error) {
	fragments := Fragments(content, lang)
	slices.SortFunc(fragments, func(a, b Fragment) int {
		return cmp.Compare(b.StartByte, a.StartByte)
	})

	var errs error
	out := content
	for _, f := range fragments {
		replacement, err := fn(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", f.StartLine+1, err))
			continue
		}
		if lang != CSS {
			replacement = keepSpace(f.Text, replacement)
		}
		out = out[:f.StartByte] + replacement + out[f.EndByte:]
	}
	return out, errs
}

// keepSpace gives replacement the leading and trailing whitespace of
// original, so embedded styles keep their place in the surrounding markup
func keepSpace(original, replacement string) string {
	trimmed := strings.TrimSpace(replacement)
	if strings.TrimSpace(original) == "" {
		return original
	}
	lead := original[:len(original)-len(strings.TrimLeft(original, " \t\r\n"))]
	trail := original[len(strings.TrimRight(original, " \t\r\n")):]
	return lead + trimmed + trail
}
