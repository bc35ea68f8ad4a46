// Path utilities operate on strings of the form "/a/b/c/": absolute,
// slash-delimited, slash-terminated sequences of lowercase-letter
// components. They are pure and require no locking.
package dirtree

import "strings"

const (
	// DefaultMaxPathLength bounds the total length of a path string.
	DefaultMaxPathLength = 4095
	// DefaultMaxComponentLength bounds the length of a single component.
	DefaultMaxComponentLength = 255
)

const rootPath = "/"

// ValidatePath reports whether path matches (/[a-z]{1,maxComponent})+/
// or is exactly "/", and its total length is within maxPath.
func ValidatePath(path string, maxPath, maxComponent int) bool {
	if len(path) == 0 || len(path) > maxPath {
		return false
	}
	if path[0] != '/' || path[len(path)-1] != '/' {
		return false
	}
	if path == rootPath {
		return true
	}

	rest := path[1:]
	for len(rest) > 0 {
		end := strings.IndexByte(rest, '/')
		if end <= 0 || end > maxComponent {
			return false
		}
		for i := 0; i < end; i++ {
			c := rest[i]
			if c < 'a' || c > 'z' {
				return false
			}
		}
		rest = rest[end+1:]
	}
	return true
}

// SplitFirstComponent splits the leading component off a path relative
// to some node, returning it along with the remainder (still slash-
// terminated). It returns ok=false when path is "/" (nothing left to
// descend into).
func SplitFirstComponent(path string) (component, rest string, ok bool) {
	if path == rootPath {
		return "", "", false
	}
	end := strings.IndexByte(path[1:], '/')
	if end < 0 {
		fatal("SplitFirstComponent", "malformed path %q has no terminating slash", path)
	}
	end++ // account for the leading '/' we sliced off above
	return path[1:end], path[end:], true
}

// SplitParent splits path into its parent path and final component name.
// It is undefined for the root path.
func SplitParent(path string) (parentPath, name string) {
	if path == rootPath {
		fatal("SplitParent", "called on root path")
	}
	trimmed := strings.TrimSuffix(path, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	return path[:idx+1], trimmed[idx+1:]
}

// IsAncestor reports whether a is an ancestor of b at component
// boundaries. A path is considered an ancestor of itself.
func IsAncestor(a, b string) bool {
	return strings.HasPrefix(b, a)
}

// LCA returns the longest path that is a common prefix of a and b at
// component boundaries. It always returns at least "/".
func LCA(a, b string) string {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	lastSlash := 0
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			break
		}
		if a[i] == '/' {
			lastSlash = i
		}
	}
	return a[:lastSlash+1]
}

// PathDepth reports the number of components in path; the root has
// depth zero.
func PathDepth(path string) int {
	if path == rootPath {
		return 0
	}
	return strings.Count(path, "/") - 1
}

// NthComponent returns the name and byte offset of the nth component of
// path, counting from n=1 for the first component. For the root path it
// returns ("", 0); for any other path, n=0 panics.
func NthComponent(path string, n int) (name string, index int) {
	if path == rootPath {
		return "", 0
	}
	seps := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			seps++
		}
		if seps == n {
			start := i + 1
			end := strings.IndexByte(path[start:], '/')
			if end < 0 {
				fatal("NthComponent", "malformed path %q has no terminating slash", path)
			}
			return path[start : start+end], start
		}
	}
	fatal("NthComponent", "path %q has fewer than %d components", path, n)
	return "", 0
}
