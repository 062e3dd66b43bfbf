// Package commands implements the packwerk subcommands.
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alxckn/packwerk-extensions/internal/cli/config"
	"github.com/alxckn/packwerk-extensions/internal/cli/output"
	"github.com/alxckn/packwerk-extensions/internal/runner"
	_ "github.com/alxckn/packwerk-extensions/pkg/privacy" // register the privacy checker
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Paths  []string // Restrict scanning to these root-relative prefixes
	Format string   // Output format: text, json
	Watch  bool     // Re-run on file changes
}

// ErrViolationsFound signals a failing check run through the exit code
// without double-printing the error.
var ErrViolationsFound = errors.New("violations found")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check cross-package references against each package's privacy policy",
		Long: `Scan the project for cross-package constant references and report the
ones that violate the destination package's privacy policy.

Violations already recorded in a package_todo.yml ledger are suppressed
unless the source package enforces privacy strictly.`,
		Example: `  # Check the whole project
  packwerk check

  # Check specific paths
  packwerk check components/billing

  # Machine-readable output
  packwerk check --format json

  # Re-run automatically on file changes
  packwerk check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run checks when files change")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.Output)
	if opts.Format != "" {
		mode = output.Mode(opts.Format)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	runOnce := func() (bool, error) {
		result, err := runner.Run(cmd.Context(), runner.Options{
			Root:         cfg.ProjectRoot,
			Paths:        opts.Paths,
			Exclude:      cfg.Exclude,
			PackagePaths: cfg.PackagePaths,
			Parallel:     cfg.Parallel,
			Logger:       logger,
		})
		if err != nil {
			return false, err
		}
		if err := r.Result(result); err != nil {
			return false, err
		}
		return len(result.Reported()) > 0, nil
	}

	if opts.Watch {
		return watchAndRun(cmd, cfg.ProjectRoot, logger, runOnce)
	}

	failed, err := runOnce()
	if err != nil {
		return err
	}
	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return ErrViolationsFound
	}
	return nil
}
