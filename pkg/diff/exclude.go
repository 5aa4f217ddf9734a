package diff

import (
	"path"
	"path/filepath"
	"strings"
)

// excluder matches directory entries against exclude patterns.
// Patterns support:
//   - Simple glob patterns: *.tmp, *.log (matched against the entry name)
//   - Directory patterns: .git/, node_modules/ (directories only)
//   - Path patterns: build/*.o (matched against the path from the roots)
//   - Any-depth patterns: **/testdata/*.golden
type excluder struct {
	names []string
	dirs  []string
	paths []string
	deep  []string
}

func newExcluder(patterns []string) *excluder {
	e := &excluder{}
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		switch {
		case p == "" || p == "/":
			continue
		case strings.HasSuffix(p, "/"):
			e.dirs = append(e.dirs, strings.TrimSuffix(p, "/"))
		case strings.HasPrefix(p, "**/"):
			e.deep = append(e.deep, strings.TrimPrefix(p, "**/"))
		case strings.Contains(p, "/"):
			e.paths = append(e.paths, strings.TrimPrefix(p, "/"))
		default:
			e.names = append(e.names, p)
		}
	}
	return e
}

// empty reports whether no pattern was configured
func (e *excluder) empty() bool {
	return len(e.names)+len(e.dirs)+len(e.paths)+len(e.deep) == 0
}

// match reports whether the entry at relativePath is excluded.
// Entries are checked level by level, so an excluded directory is never
// descended into and its content needs no check.
func (e *excluder) match(relativePath string, isDir bool) bool {
	if e.empty() {
		return false
	}

	rel := filepath.ToSlash(relativePath)
	name := path.Base(rel)

	for _, p := range e.names {
		if globMatch(p, name) {
			return true
		}
	}

	if isDir {
		for _, p := range e.dirs {
			if globMatch(p, name) || globMatch(p, rel) {
				return true
			}
		}
	}

	for _, p := range e.paths {
		if globMatch(p, rel) {
			return true
		}
	}

	// **/suffix matches the suffix against every trailing part of the path
	for _, p := range e.deep {
		depth := strings.Count(p, "/") + 1
		parts := strings.Split(rel, "/")
		if len(parts) >= depth && globMatch(p, strings.Join(parts[len(parts)-depth:], "/")) {
			return true
		}
	}

	return false
}

func globMatch(pattern, name string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}
