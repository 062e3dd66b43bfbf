// Package config loads tool-wide configuration from packwerk.yml,
// environment variables and CLI flags.
package config

import "fmt"

// Config holds all tool-wide configuration options. Per-package policy
// lives in each package.yml, not here.
type Config struct {
	// ProjectRoot is the absolute directory containing packwerk.yml.
	// Derived at load time, never read from the file.
	ProjectRoot string `koanf:"-"`

	// Exclude lists root-relative path prefixes that are never scanned.
	Exclude []string `koanf:"exclude"`

	// PackagePaths lists root-relative globs selecting which package.yml
	// directories are packages. Empty means every manifest is.
	PackagePaths []string `koanf:"package_paths"`

	// Parallel bounds the number of files scanned concurrently.
	// Zero means one worker per CPU.
	Parallel int `koanf:"parallel"`

	// Output selects the renderer: "text" or "json".
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`
}

// DefaultOutput is the renderer used unless overridden.
const DefaultOutput = "text"

// DefaultExclude holds path prefixes skipped unless overridden.
var DefaultExclude = []string{"vendor", "node_modules", "tmp"}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("invalid output format %q (expected text or json)", c.Output)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must be non-negative, got %d", c.Parallel)
	}
	return nil
}
