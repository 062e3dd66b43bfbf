package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/alxckn/packwerk-extensions/internal/cli/config"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

// NewListPackagesCommand creates the list-packages command.
func NewListPackagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-packages",
		Short: "List all packages and their privacy policy",
		RunE:  runListPackages,
	}
}

func runListPackages(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	set, err := packs.Discover(cfg.ProjectRoot, cfg.PackagePaths)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Package", "Enforce Privacy", "Private Constants", "Ignored"})
	for _, pkg := range set.All() {
		t.AppendRow(table.Row{
			pkg.Name,
			pkg.Config.EnforcePrivacy.String(),
			len(pkg.Config.PrivateConstants),
			len(pkg.Config.IgnoredPrivateConstants),
		})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d package(s)\n", set.Len())
	return nil
}
