// Package packs models pack-structured codebases: packages discovered by
// their package.yml manifest, each carrying an immutable privacy policy.
package packs

import (
	"path"
	"strings"
)

// DefaultPublicPath is the conventional sub-path whose constants are exempt
// from privacy enforcement.
const DefaultPublicPath = "app/public/"

// Config is the privacy policy a package declares in its package.yml.
// Loaded once per package per run and never mutated afterwards.
type Config struct {
	// EnforcePrivacy is the enforcement level for constants this package owns.
	EnforcePrivacy EnforcementMode

	// PrivateConstants lists fully-qualified, ::-delimited names that are
	// private to the package. Empty means every constant the package
	// declares is private.
	PrivateConstants []string

	// IgnoredPrivateConstants is an allow-list overriding privacy for
	// specific fully-qualified names.
	IgnoredPrivateConstants []string

	// PublicPath is the package-relative directory whose constants form the
	// public API surface. Defaults to DefaultPublicPath.
	PublicPath string
}

// Package is a named, independently ownable unit of the codebase.
type Package struct {
	// Name is the package's root-relative, slash-separated path. The root
	// package is named ".".
	Name string

	// Path is the absolute path of the package directory.
	Path string

	Config Config
}

// PublicPath returns the root-relative public API directory of the package,
// always ending in "/".
func (p *Package) PublicPath() string {
	pub := p.Config.PublicPath
	if pub == "" {
		pub = DefaultPublicPath
	}
	pub = strings.TrimSuffix(pub, "/")
	if p.Name == "." {
		return pub + "/"
	}
	return path.Join(p.Name, pub) + "/"
}

// Owns reports whether the root-relative file path lies inside the package.
func (p *Package) Owns(file string) bool {
	if p.Name == "." {
		return true
	}
	return file == p.Name || strings.HasPrefix(file, p.Name+"/")
}
