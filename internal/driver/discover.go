package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude selects PHP sources when walking a directory.
const DefaultInclude = "**/*.php"

// Discover expands paths into a sorted, de-duplicated file list. Files
// named explicitly are kept unless an exclude pattern matches them.
// Directories are walked and every file matching an include pattern and
// no exclude pattern is kept. Patterns use doublestar syntax and match
// slash-separated paths relative to the directory being walked.
func Discover(paths, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid path pattern %q", p)
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !matchAny(exclude, filepath.ToSlash(root)) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if rel != "." && (matchAny(exclude, rel) || matchAny(exclude, rel+"/")) {
					return filepath.SkipDir
				}
				return nil
			}
			if matchAny(include, rel) && !matchAny(exclude, rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
