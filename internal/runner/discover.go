package runner

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// skipDirs are never searched
var skipDirs = []string{"node_modules", "dist", "build"}

// shouldSkipDirectory reports hidden directories, dependency and build
// output directories, and the output directory itself
func shouldSkipDirectory(info os.FileInfo, relPath, outDir string) bool {
	if !info.IsDir() || relPath == "." {
		return false
	}
	if strings.HasPrefix(info.Name(), ".") || slices.Contains(skipDirs, info.Name()) {
		return true
	}
	return outDir != "" && relPath == outDir
}

// matchesAnyPattern checks a slash-separated relative path against patterns
func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Discover lists the files below rootDir matching any pattern, as
// slash-separated paths relative to rootDir, sorted
func Discover(fs afero.Fs, rootDir string, patterns []string, outDir string) ([]string, error) {
	outDir = filepath.ToSlash(filepath.Clean(outDir))
	if outDir == "." {
		outDir = ""
	}

	var files []string
	err := afero.Walk(fs, rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if shouldSkipDirectory(info, rel, outDir) {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return nil
		}
		if matchesAnyPattern(rel, patterns) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
