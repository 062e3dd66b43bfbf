package resolver

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

// Index maps fully-qualified constant names to the root-relative file that
// defines them. Built once per run; read-only afterwards.
type Index struct {
	set       *packs.Set
	constants map[string]string // constant name -> defining file
}

// NewIndex walks every package's autoload roots and records the constant
// each .rb file defines. When two files claim the same constant the first
// one wins and the collision is logged.
func NewIndex(set *packs.Set, logger *slog.Logger) (*Index, error) {
	idx := &Index{set: set, constants: make(map[string]string)}

	for _, pkg := range set.All() {
		roots, err := autoloadRoots(pkg.Path)
		if err != nil {
			return nil, err
		}
		for _, root := range roots {
			if err := idx.indexRoot(pkg, root, logger); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

// autoloadRoots returns the autoload root directories of a package:
// every directory under app/ plus lib/, when present.
func autoloadRoots(pkgDir string) ([]string, error) {
	var roots []string

	appDir := filepath.Join(pkgDir, "app")
	entries, err := os.ReadDir(appDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading %s: %w", appDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			roots = append(roots, filepath.Join(appDir, e.Name()))
		}
	}

	libDir := filepath.Join(pkgDir, "lib")
	if info, err := os.Stat(libDir); err == nil && info.IsDir() {
		roots = append(roots, libDir)
	}

	return roots, nil
}

func (idx *Index) indexRoot(pkg *packs.Package, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".rb") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := ConstantForPath(filepath.ToSlash(rel))
		if name == "" {
			return nil
		}

		location := idx.set.RelPath(p)

		// A file under one package's autoload root may still belong to a
		// nested package; ownership is decided by path, not by which walk
		// reached the file first.
		if owner := idx.set.ForFile(location); owner.Name != pkg.Name {
			return nil
		}

		if existing, ok := idx.constants[name]; ok {
			logger.Warn("constant defined in multiple files, keeping first",
				"constant", name, "kept", existing, "ignored", location)
			return nil
		}
		idx.constants[name] = location
		return nil
	})
}

// Resolve looks up the file defining a constant name. Unrooted names are
// resolved from the top-level namespace only.
func (idx *Index) Resolve(name string) (string, bool) {
	if !strings.HasPrefix(name, "::") {
		name = "::" + name
	}
	location, ok := idx.constants[name]
	return location, ok
}

// Len returns the number of indexed constants.
func (idx *Index) Len() int {
	return len(idx.constants)
}
