package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have a .md, .markdown, .mdown or .mkd extension")
	ErrInvalidPattern     = errors.New("invalid glob pattern")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// discoverFiles expands the positional arguments into markdown files.
// Arguments are files, directories (walked recursively, hidden directories
// skipped) or doublestar globs such as "docs/**/*.md". Paths matching an
// exclude pattern are dropped. The result keeps argument order and holds
// each file once.
func discoverFiles(args, exclude []string) ([]string, error) {
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: --exclude %q", ErrInvalidPattern, p)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || isExcluded(path, exclude) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		if isGlob(arg) {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, arg, err)
			}
			slices.Sort(matches)
			for _, m := range matches {
				if fileutil.IsMarkdownFile(m) && fileutil.FileExists(m) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !fileutil.IsMarkdownFile(arg) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, arg)
			}
			add(arg)
			continue
		}
		if err := walkMarkdown(arg, exclude, add); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// walkMarkdown calls add for every markdown file under root.
func walkMarkdown(root string, exclude []string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || isExcluded(path, exclude)) {
				return filepath.SkipDir
			}
			return nil
		}
		if fileutil.IsMarkdownFile(path) {
			add(path)
		}
		return nil
	})
}

// isGlob reports whether arg contains glob metacharacters.
func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// isExcluded matches path, and its base name, against the exclude patterns.
func isExcluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, p := range exclude {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdfmt.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdfmt.MaxPoolSize)
	}
	return nil
}
