// Package runner orchestrates a checking run: package discovery, constant
// indexing, parallel file scanning, checker evaluation and classification
// of violations against each source package's grandfather ledger.
package runner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alxckn/packwerk-extensions/internal/resolver"
	"github.com/alxckn/packwerk-extensions/pkg/checker"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
	"github.com/alxckn/packwerk-extensions/pkg/todo"
)

// Options configures a checking run.
type Options struct {
	// Root is the project root directory.
	Root string

	// Paths optionally restricts scanning to files under these
	// root-relative prefixes.
	Paths []string

	// Exclude lists root-relative path prefixes that are never scanned.
	Exclude []string

	// PackagePaths optionally restricts which manifest directories become
	// packages, as root-relative globs.
	PackagePaths []string

	// Parallel bounds the number of files scanned concurrently.
	// Zero means one worker per CPU.
	Parallel int

	Logger *slog.Logger
}

// Outcome pairs a detected violation with its classification against the
// source package's ledger.
type Outcome struct {
	checker.Violation

	// Listed is true when the ledger already records the violation.
	Listed bool

	// Strict is true when the violation must be reported regardless of the
	// ledger.
	Strict bool
}

// Reported is true when the violation surfaces in the run's output:
// strict violations always do, unlisted ones do too.
func (o Outcome) Reported() bool {
	return o.Strict || !o.Listed
}

// Result aggregates a checking run.
type Result struct {
	Packages     int
	Constants    int
	FilesScanned int
	Outcomes     []Outcome

	// Ledgers holds every source package's loaded ledger, keyed by package
	// name. Exposed so update-todo can rewrite them.
	Ledgers map[string]*todo.Ledger

	Set *packs.Set
}

// Reported returns the outcomes that must surface in output.
func (r *Result) Reported() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Reported() {
			out = append(out, o)
		}
	}
	return out
}

// Grandfathered returns the number of suppressed violations.
func (r *Result) Grandfathered() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Reported() {
			n++
		}
	}
	return n
}

// Run executes a full checking run. The ledger of every package is loaded
// up front and treated as read-only while workers scan files concurrently.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Parallel <= 0 {
		opts.Parallel = runtime.NumCPU()
	}

	if err := packs.Stat(opts.Root); err != nil {
		return nil, err
	}
	set, err := packs.Discover(opts.Root, opts.PackagePaths)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("discovered packages", "count", set.Len())

	idx, err := resolver.NewIndex(set, opts.Logger)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("indexed constants", "count", idx.Len())

	ledgers := make(map[string]*todo.Ledger, set.Len())
	for _, pkg := range set.All() {
		ledger, err := todo.Load(pkg.Name, pkg.Path)
		if err != nil {
			return nil, err
		}
		ledgers[pkg.Name] = ledger
	}

	files, err := collectFiles(set, opts)
	if err != nil {
		return nil, err
	}

	checkers := checker.All()

	var mu sync.Mutex
	var violations []checker.Violation

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(set.Root(), filepath.FromSlash(file)))
			if err != nil {
				return err
			}
			var found []checker.Violation
			for _, ref := range resolver.ExtractReferences(set, idx, file, content) {
				for _, chk := range checkers {
					if chk.IsViolation(ref) {
						found = append(found, chk.NewViolation(ref))
					}
				}
			}
			if len(found) > 0 {
				mu.Lock()
				violations = append(violations, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Packages:     set.Len(),
		Constants:    idx.Len(),
		FilesScanned: len(files),
		Ledgers:      ledgers,
		Set:          set,
	}

	for _, v := range violations {
		chk, ok := checker.Get(v.Kind)
		if !ok {
			continue
		}
		ledger := ledgers[v.Reference.Source.Name]
		result.Outcomes = append(result.Outcomes, Outcome{
			Violation: v,
			Listed:    ledger.Listed(v.Kind, v.Reference.Destination.Name, v.Reference.ConstantName, v.Reference.Path),
			Strict:    chk.IsStrict(v, ledger),
		})
	}

	sort.Slice(result.Outcomes, func(i, j int) bool {
		a, b := result.Outcomes[i].Reference, result.Outcomes[j].Reference
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.ConstantName < b.ConstantName
	})

	return result, nil
}

// collectFiles lists the root-relative .rb files a run should scan.
func collectFiles(set *packs.Set, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(set.Root(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := set.RelPath(p)
		if d.IsDir() {
			if p == set.Root() {
				return nil
			}
			if skipDir(d.Name()) || excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".rb") {
			return nil
		}
		if excluded(rel, opts.Exclude) || !selected(rel, opts.Paths) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	switch name {
	case ".git", "node_modules", "tmp", "vendor":
		return true
	}
	return strings.HasPrefix(name, ".")
}

func excluded(rel string, exclude []string) bool {
	for _, prefix := range exclude {
		prefix = strings.TrimSuffix(prefix, "/")
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}

func selected(rel string, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, prefix := range paths {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}
