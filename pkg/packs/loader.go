package packs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ManifestName is the file that marks a directory as a package.
const ManifestName = "package.yml"

// recognizedKeys are the package.yml keys this tool understands or
// tolerates. Dependency-related keys are accepted for compatibility with
// manifests shared with other conformance tooling but are not interpreted.
var recognizedKeys = map[string]bool{
	"enforce_privacy":           true,
	"private_constants":         true,
	"ignored_private_constants": true,
	"public_path":               true,
	"enforce_dependencies":      true,
	"dependencies":              true,
	"metadata":                  true,
}

// LoadPackage reads and validates the package.yml in pkgDir. The package
// name is pkgDir relative to root, slash-separated ("." for the root
// package). Malformed manifests fail here so the checkers can assume valid
// policy data.
func LoadPackage(root, pkgDir string) (*Package, error) {
	rel, err := filepath.Rel(root, pkgDir)
	if err != nil {
		return nil, fmt.Errorf("package %s is not under project root: %w", pkgDir, err)
	}
	name := filepath.ToSlash(rel)

	manifest := filepath.Join(pkgDir, ManifestName)
	k := koanf.New(".")
	if err := k.Load(file.Provider(manifest), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", manifest, err)
	}

	raw := k.Raw()
	for key := range raw {
		if !recognizedKeys[key] {
			return nil, fmt.Errorf("%s: unrecognized key %q", manifest, key)
		}
	}

	mode, err := ParseEnforcementMode(raw["enforce_privacy"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest, err)
	}

	private, err := stringList(manifest, raw, "private_constants")
	if err != nil {
		return nil, err
	}
	ignored, err := stringList(manifest, raw, "ignored_private_constants")
	if err != nil {
		return nil, err
	}

	cfg := Config{
		EnforcePrivacy:          mode,
		PrivateConstants:        private,
		IgnoredPrivateConstants: ignored,
		PublicPath:              k.String("public_path"),
	}
	if cfg.PublicPath == "" {
		cfg.PublicPath = DefaultPublicPath
	}

	return &Package{Name: name, Path: pkgDir, Config: cfg}, nil
}

// stringList reads a manifest key that must be a YAML sequence of strings.
// A scalar here would otherwise be dropped, silently turning an explicit
// private-constants list into "everything is private".
func stringList(manifest string, raw map[string]interface{}, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a list of strings, got %v", manifest, key, v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: %s must be a list of strings, got element %v", manifest, key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// HasManifest reports whether dir contains a package.yml.
func HasManifest(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil
}
