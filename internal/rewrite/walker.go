// Package rewrite runs a text transform over a set of component files and writes back
// only the files it changed.
package rewrite

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// skippedDirs are never descended into by a recursive walk, in addition to dot directories.
var skippedDirs = map[string]bool{
	"node_modules": true,
}

// Walker enumerates the files a rewrite applies to.
type Walker struct {
	root       string
	extensions []string
	exclude    []*regexp.Regexp
	recursive  bool
}

// NewWalker creates a Walker for root. Exclude entries are file names or glob patterns
// matched against the slash-separated path relative to root; "*" stops at a slash and
// "**" does not.
func NewWalker(root string, extensions, exclude []string, recursive bool) *Walker {
	w := &Walker{
		root:       root,
		extensions: extensions,
		recursive:  recursive,
	}
	for _, pattern := range exclude {
		w.exclude = append(w.exclude, globPattern(pattern))
	}
	return w
}

// globPattern converts a glob pattern to an anchored regular expression.
func globPattern(pattern string) *regexp.Regexp {
	normalized := strings.ReplaceAll(pattern, "\\", "/")

	expr := regexp.QuoteMeta(normalized)
	expr = strings.ReplaceAll(expr, `\*\*`, ".*")
	expr = strings.ReplaceAll(expr, `\*`, "[^/]*")
	expr = strings.ReplaceAll(expr, `\?`, "[^/]")

	return regexp.MustCompile("^" + expr + "$")
}

// Excluded reports whether a root-relative path matches the exclusion list, either by
// its base name or by its full relative path.
func (w *Walker) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, re := range w.exclude {
		if re.MatchString(base) || re.MatchString(rel) {
			return true
		}
	}
	return false
}

func (w *Walker) hasExtension(name string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range w.extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Files returns the matching files in lexical order. Without recursion only the files
// directly inside root are considered.
func (w *Walker) Files() ([]string, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, &WalkError{Root: w.root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &WalkError{Root: w.root, Cause: fs.ErrInvalid}
	}

	var files []string
	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == w.root {
				return nil
			}
			if !w.recursive || strings.HasPrefix(d.Name(), ".") || skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !w.hasExtension(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		if w.Excluded(rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &WalkError{Root: w.root, Cause: err}
	}

	sort.Strings(files)
	return files, nil
}
