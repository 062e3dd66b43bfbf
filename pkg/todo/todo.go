// Package todo reads and writes package_todo.yml ledgers: per-package
// records of violations accepted before enforcement began, used to avoid
// blocking on pre-existing debt.
package todo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/alxckn/packwerk-extensions/pkg/checker"
)

// FileName is the ledger file kept at the root of each package.
const FileName = "package_todo.yml"

// header explains the ledger's purpose to people reading the generated file.
const header = `# This file contains a list of violations that are not part of the long term plan for the
# '%s' package.
# We should generally work to reduce this list over time.
#
# You can regenerate this file using the following command:
#
# packwerk update-todo
`

// Entry records the accepted violations of a single constant: which rule
// kinds were breached and from which files.
type Entry struct {
	Violations []string `yaml:"violations"`
	Files      []string `yaml:"files"`
}

// Ledger is the suppressed-violations record owned by one source package.
// It is loaded once per checking run and read-only during evaluation.
type Ledger struct {
	pkgName string
	path    string

	// entries maps destination package name -> constant name -> entry.
	entries map[string]map[string]*Entry
}

var _ checker.Ledger = (*Ledger)(nil)

// New returns an empty ledger for the package rooted at pkgDir.
func New(pkgName, pkgDir string) *Ledger {
	return &Ledger{
		pkgName: pkgName,
		path:    filepath.Join(pkgDir, FileName),
		entries: make(map[string]map[string]*Entry),
	}
}

// Load reads the ledger of the package rooted at pkgDir. A missing file is
// not an error; it yields an empty ledger.
func Load(pkgName, pkgDir string) (*Ledger, error) {
	l := &Ledger{
		pkgName: pkgName,
		path:    filepath.Join(pkgDir, FileName),
		entries: make(map[string]map[string]*Entry),
	}

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", l.path, err)
	}

	if err := yaml.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("malformed ledger %s: %w", l.path, err)
	}
	if l.entries == nil {
		l.entries = make(map[string]map[string]*Entry)
	}
	return l, nil
}

// Listed implements checker.Ledger.
func (l *Ledger) Listed(kind checker.Kind, destination, constant, file string) bool {
	constants, ok := l.entries[destination]
	if !ok {
		return false
	}
	entry, ok := constants[constant]
	if !ok {
		return false
	}
	return slices.Contains(entry.Violations, string(kind)) && slices.Contains(entry.Files, file)
}

// Add records a violation in the ledger. Used by update-todo; never called
// during evaluation.
func (l *Ledger) Add(v checker.Violation) {
	dest := v.Reference.Destination.Name
	constants, ok := l.entries[dest]
	if !ok {
		constants = make(map[string]*Entry)
		l.entries[dest] = constants
	}
	entry, ok := constants[v.Reference.ConstantName]
	if !ok {
		entry = &Entry{}
		constants[v.Reference.ConstantName] = entry
	}
	if !slices.Contains(entry.Violations, string(v.Kind)) {
		entry.Violations = append(entry.Violations, string(v.Kind))
		sort.Strings(entry.Violations)
	}
	if !slices.Contains(entry.Files, v.Reference.Path) {
		entry.Files = append(entry.Files, v.Reference.Path)
		sort.Strings(entry.Files)
	}
}

// Empty reports whether the ledger records no violations.
func (l *Ledger) Empty() bool {
	return len(l.entries) == 0
}

// Save writes the ledger back to disk in deterministic order, or removes
// the file when the ledger is empty.
func (l *Ledger) Save() error {
	if l.Empty() {
		err := os.Remove(l.path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, header, l.pkgName)
	buf.WriteString("---\n")

	// yaml.v3 marshals maps with sorted keys, which keeps diffs stable.
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l.entries); err != nil {
		return fmt.Errorf("error encoding ledger for %s: %w", l.pkgName, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return os.WriteFile(l.path, buf.Bytes(), 0o644)
}

// Path returns the on-disk location of the ledger file.
func (l *Ledger) Path() string {
	return l.path
}
