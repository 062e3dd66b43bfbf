// Package resolver infers which constants a pack-structured codebase
// declares and where, and extracts constant references from source files.
// Inference follows the conventional autoloader layout: every directory
// under a package's app/ plus its lib/ is an autoload root, and a file
// foo_bar/baz.rb under a root defines ::FooBar::Baz.
package resolver

import (
	"path"
	"strings"
)

// Camelize converts a snake_case path segment into a constant segment:
// "foo_bar" becomes "FooBar".
func Camelize(segment string) string {
	parts := strings.Split(segment, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// ConstantForPath infers the fully-qualified constant a file defines, given
// its path relative to an autoload root. Returns "" for paths that cannot
// define a constant.
func ConstantForPath(rel string) string {
	rel = strings.TrimSuffix(path.Clean(rel), ".rb")
	if rel == "" || rel == "." {
		return ""
	}
	segments := strings.Split(rel, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		camel := Camelize(seg)
		if camel == "" {
			return ""
		}
		out = append(out, camel)
	}
	return "::" + strings.Join(out, "::")
}
