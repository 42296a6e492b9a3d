// Package runner applies a pass pipeline to the stylesheets in a project:
// whole .css files, <style> elements and style attributes in HTML, and css
// and html tagged templates in JS/TS.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/csscomposer/internal/ast"
	"bennypowers.dev/csscomposer/internal/composer"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/parser"
	"bennypowers.dev/csscomposer/internal/parser/css"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Options controls where files come from and where results go
type Options struct {
	// RootDir is the directory patterns and output paths are relative to
	RootDir string
	// Patterns are doublestar globs
	Patterns []string
	// OutDir receives results at the same relative paths
	OutDir string
	// Write replaces each file in place
	Write bool
	// Stdout receives results when neither OutDir nor Write is set
	Stdout io.Writer
}

// Runner processes files through a pipeline
type Runner struct {
	fs       afero.Fs
	pipeline *composer.Pipeline
	opts     Options
}

// New creates a runner over fs
func New(fs afero.Fs, pipeline *composer.Pipeline, opts Options) *Runner {
	if opts.RootDir == "" {
		opts.RootDir = "."
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.OutDir != "" && filepath.IsAbs(opts.OutDir) {
		if rel, err := filepath.Rel(opts.RootDir, opts.OutDir); err == nil {
			opts.OutDir = rel
		}
	}
	return &Runner{fs: fs, pipeline: pipeline, opts: opts}
}

// Run processes every matching file. A failing file does not stop the run;
// all failures are combined in the returned error.
func (r *Runner) Run(ctx context.Context) error {
	if r.opts.Write && r.opts.OutDir != "" {
		return fmt.Errorf("--write and --out cannot be combined")
	}

	files, err := Discover(r.fs, r.opts.RootDir, r.opts.Patterns, r.opts.OutDir)
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}
	if len(files) == 0 {
		log.Warn("No files matched %v", r.opts.Patterns)
		return nil
	}
	log.Info("Found %d files", len(files))

	stdout := !r.opts.Write && r.opts.OutDir == ""
	var errs error
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if stdout && len(files) > 1 && parser.DetectLanguage(rel) != parser.Unknown {
			if _, err := io.WriteString(r.opts.Stdout, header(rel)); err != nil {
				return multierr.Append(errs, err)
			}
		}
		if err := r.ProcessFile(rel); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
	}
	return errs
}

// header marks where a file starts in combined output, as a comment in the
// file's own language
func header(rel string) string {
	switch parser.DetectLanguage(rel) {
	case parser.HTML:
		return "<!-- " + rel + " -->\n"
	case parser.JS:
		return "// " + rel + "\n"
	default:
		return "/* " + rel + " */\n"
	}
}

// ProcessFile transforms one file, given relative to the root directory.
// Output is written even when some fragments failed; the failures are
// returned.
func (r *Runner) ProcessFile(rel string) error {
	lang := parser.DetectLanguage(rel)
	if lang == parser.Unknown {
		log.Warn("Skipping %s: unsupported file type", rel)
		return nil
	}

	path := filepath.Join(r.opts.RootDir, filepath.FromSlash(rel))
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	content := string(data)
	out, transformErr := Transform(content, lang, r.pipeline)

	if err := r.emit(rel, path, content, out); err != nil {
		return multierr.Append(transformErr, err)
	}
	log.Debug("Processed %s", rel)
	return transformErr
}

func (r *Runner) emit(rel, path, original, out string) error {
	switch {
	case r.opts.Write:
		if out == original {
			return nil
		}
		info, err := r.fs.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat: %w", err)
		}
		return afero.WriteFile(r.fs, path, []byte(out), info.Mode().Perm())

	case r.opts.OutDir != "":
		target := filepath.Join(r.opts.RootDir, r.opts.OutDir, filepath.FromSlash(rel))
		if err := r.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return afero.WriteFile(r.fs, target, []byte(out), 0o644)

	default:
		_, err := io.WriteString(r.opts.Stdout, out)
		return err
	}
}

// Transform runs the pipeline over every stylesheet fragment of content
func Transform(content string, lang parser.Language, pipeline *composer.Pipeline) (string, error) {
	return parser.Rewrite(content, lang, func(f parser.Fragment) (string, error) {
		if f.Kind == parser.Declarations {
			return transformDeclarations(f.Text, pipeline)
		}
		root, err := css.Parse(f.Text)
		if err != nil {
			return "", err
		}
		pipeline.Run(root)
		return root.String(), nil
	})
}

// transformDeclarations rewrites a style attribute. The result is only used
// when it is still a flat declaration list; a theme macro, which needs a
// nested block, leaves the attribute unchanged.
func transformDeclarations(text string, pipeline *composer.Pipeline) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	root, err := css.Parse("x{" + text + "}")
	if err != nil {
		return "", err
	}
	pipeline.Run(root)

	rule, ok := root.Nodes()[0].(*ast.Rule)
	if !ok || len(root.Nodes()) != 1 {
		return text, nil
	}
	decls := make([]string, 0, len(rule.Nodes()))
	for _, n := range rule.Nodes() {
		d, ok := n.(*ast.Decl)
		if !ok {
			log.Debug("Leaving style attribute %q: result is not a declaration list", text)
			return text, nil
		}
		decls = append(decls, d.String())
	}
	return strings.Join(decls, "; "), nil
}
