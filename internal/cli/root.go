// Package cli provides the command-line interface for packwerk.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alxckn/packwerk-extensions/internal/cli/commands"
	"github.com/alxckn/packwerk-extensions/internal/cli/config"
)

var (
	cfgFile    string
	projectDir string
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packwerk",
		Short: "packwerk - architectural conformance checker",
		Long: `packwerk checks cross-package constant references against each package's
declared privacy policy.

Packages are directories carrying a package.yml manifest. Violations can be
grandfathered into per-package package_todo.yml ledgers for incremental
adoption; packages that opt in to strict enforcement bypass the ledger.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.IntoContext(cmd.Context(), cfg)
			ctx = config.LoggerIntoContext(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: packwerk.yml in project root)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "Project root directory (default: inferred)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")
	rootCmd.PersistentFlags().Int("parallel", 0, "Number of files scanned concurrently (0: one per CPU)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text, json")

	rootCmd.AddCommand(
		commands.NewCheckCommand(),
		commands.NewUpdateTodoCommand(),
		commands.NewValidateCommand(),
		commands.NewListPackagesCommand(),
		commands.NewVersionCommand(Version),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
