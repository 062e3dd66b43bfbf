package packs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Set holds every package discovered in a project, ordered so that the
// innermost package wins file-ownership lookups.
type Set struct {
	root     string
	packages []*Package // sorted by name length, longest first
	byName   map[string]*Package
}

// skippedDirs are never descended into during discovery or scanning.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"tmp":          true,
	"vendor":       true,
}

// Discover walks root looking for package.yml manifests and loads each one.
// When packagePaths globs are configured, only manifests whose directory
// matches a glob become packages. A file that belongs to no declared package
// falls back to the root package, which is synthesized with a disabled
// policy when root itself has no manifest.
func Discover(root string, packagePaths []string) (*Set, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	set := &Set{root: abs, byName: make(map[string]*Package)}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && p != abs) {
			return filepath.SkipDir
		}
		if !HasManifest(p) {
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		if !matchPackagePath(filepath.ToSlash(rel), packagePaths) {
			return nil
		}
		pkg, err := LoadPackage(abs, p)
		if err != nil {
			return err
		}
		set.add(pkg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("package discovery failed: %w", err)
	}

	// Files outside every declared package belong to the root package.
	if _, ok := set.byName["."]; !ok {
		set.add(&Package{Name: ".", Path: abs, Config: Config{PublicPath: DefaultPublicPath}})
	}

	sort.Slice(set.packages, func(i, j int) bool {
		if len(set.packages[i].Name) != len(set.packages[j].Name) {
			return len(set.packages[i].Name) > len(set.packages[j].Name)
		}
		return set.packages[i].Name < set.packages[j].Name
	})

	return set, nil
}

// matchPackagePath reports whether a root-relative package directory
// matches any configured package_paths glob. An empty glob list matches
// everything, and the root package is always included.
func matchPackagePath(rel string, patterns []string) bool {
	if len(patterns) == 0 || rel == "." {
		return true
	}
	segs := strings.Split(rel, "/")
	for _, pattern := range patterns {
		pattern = strings.Trim(path.Clean(pattern), "/")
		if matchGlobSegments(strings.Split(pattern, "/"), segs) {
			return true
		}
	}
	return false
}

// matchGlobSegments matches path segments against glob segments, where a
// "**" segment spans zero or more path segments and every other segment
// uses path.Match semantics.
func matchGlobSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchGlobSegments(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
		return false
	}
	return matchGlobSegments(pattern[1:], segs[1:])
}

func (s *Set) add(pkg *Package) {
	s.packages = append(s.packages, pkg)
	s.byName[pkg.Name] = pkg
}

// Root returns the absolute project root the set was discovered from.
func (s *Set) Root() string {
	return s.root
}

// All returns the packages sorted by name.
func (s *Set) All() []*Package {
	out := make([]*Package, len(s.packages))
	copy(out, s.packages)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the package with the given name.
func (s *Set) Get(name string) (*Package, bool) {
	pkg, ok := s.byName[name]
	return pkg, ok
}

// Len returns the number of packages in the set.
func (s *Set) Len() int {
	return len(s.packages)
}

// ForFile returns the innermost package owning the root-relative file path.
func (s *Set) ForFile(file string) *Package {
	file = filepath.ToSlash(file)
	for _, pkg := range s.packages {
		if pkg.Name == "." {
			continue
		}
		if pkg.Owns(file) {
			return pkg
		}
	}
	return s.byName["."]
}

// RelPath converts an absolute path into the set's root-relative,
// slash-separated form used everywhere in reports and ledgers.
func (s *Set) RelPath(abs string) string {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// Stat is a convenience for tests and callers that need to distinguish a
// missing root from an empty project.
func Stat(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return nil
}
