package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alxckn/packwerk-extensions/internal/cli/config"
	"github.com/alxckn/packwerk-extensions/internal/runner"
	"github.com/alxckn/packwerk-extensions/pkg/todo"
)

// NewUpdateTodoCommand creates the update-todo command.
func NewUpdateTodoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-todo",
		Short: "Rewrite each package's package_todo.yml from the current set of violations",
		Long: `Run all checks and rewrite every package's package_todo.yml ledger so it
records exactly the violations that exist right now. Stale entries are
dropped; empty ledgers are removed.

Strict violations cannot be recorded: the source package has opted out of
grandfathering for them, so they are reported instead.`,
		RunE: runUpdateTodo,
	}
}

func runUpdateTodo(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	result, err := runner.Run(cmd.Context(), runner.Options{
		Root:         cfg.ProjectRoot,
		Exclude:      cfg.Exclude,
		PackagePaths: cfg.PackagePaths,
		Parallel:     cfg.Parallel,
		Logger:       config.GetLogger(cmd.Context()),
	})
	if err != nil {
		return err
	}

	// Rebuild every ledger from scratch so entries for fixed violations
	// disappear. Strictness was evaluated against the old ledgers.
	fresh := make(map[string]*todo.Ledger, len(result.Ledgers))
	for _, pkg := range result.Set.All() {
		fresh[pkg.Name] = todo.New(pkg.Name, pkg.Path)
	}

	var strictCount int
	for _, o := range result.Outcomes {
		if o.Strict {
			strictCount++
			fmt.Fprintln(cmd.OutOrStdout(), o.Message)
			fmt.Fprintln(cmd.OutOrStdout())
			continue
		}
		fresh[o.Reference.Source.Name].Add(o.Violation)
	}

	var recorded int
	for _, ledger := range fresh {
		if err := ledger.Save(); err != nil {
			return err
		}
		if !ledger.Empty() {
			recorded++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d package_todo.yml file(s)\n", recorded)
	if strictCount > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		fmt.Fprintf(cmd.ErrOrStderr(), "%d strict violation(s) cannot be recorded\n", strictCount)
		return ErrViolationsFound
	}
	return nil
}
