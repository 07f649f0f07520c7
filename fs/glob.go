package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/mdview"
)

// markdownPattern selects markdown files below a directory argument.
const markdownPattern = "**/*.{md,markdown}"

// Expand turns file arguments into file paths. An argument is a file, a
// directory (all markdown files below it) or a doublestar glob pattern such
// as docs/**/*.md. Paths keep argument order, each listed once.
func Expand(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		matches, err := expand(arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", mdview.ErrNoMatch, arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	switch {
	case err == nil && info.IsDir():
		return walk(arg, markdownPattern)
	case err == nil:
		return []string{arg}, nil
	}

	pattern := filepath.ToSlash(arg)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", arg)
	}
	if !hasMeta(pattern) {
		return nil, fmt.Errorf("stat %s: %w", arg, err)
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", arg, err)
	}
	return matches, nil
}

// walk lists the files below dir matching pattern, in lexical order.
func walk(dir, pattern string) ([]string, error) {
	var matches []string
	err := doublestar.GlobWalk(os.DirFS(dir), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(dir, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return matches, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
