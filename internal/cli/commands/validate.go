package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alxckn/packwerk-extensions/internal/cli/config"
	"github.com/alxckn/packwerk-extensions/pkg/packs"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every package.yml in the project",
		Long: `Load every package manifest and report configuration errors: unrecognized
keys and enforce_privacy values outside false, true, "strict" and
"strict_for_new". Checks never run against malformed manifests, so this is
the place configuration mistakes surface.`,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	var checked int
	var problems []error

	err := filepath.WalkDir(cfg.ProjectRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != cfg.ProjectRoot && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" || name == "tmp") {
			return filepath.SkipDir
		}
		if !packs.HasManifest(p) {
			return nil
		}
		checked++
		if _, err := packs.LoadPackage(cfg.ProjectRoot, p); err != nil {
			problems = append(problems, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(cmd.ErrOrStderr(), p)
		}
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%d invalid package manifest(s)", len(problems))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validated %d package(s), no errors found\n", checked)
	return nil
}
