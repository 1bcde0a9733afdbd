package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/module"
	"github.com/cameronsjo/dsdm/internal/ui"
)

// errValidationFailed is returned when at least one module fails to validate.
var errValidationFailed = errors.New("validation failed")

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Dry-run every module in the store",
	Long: `Check every module in the store without writing anything.

Each module is loaded, its template variables are built and every file is
rendered, exactly as apply would, but nothing is written. Includes are
followed, so missing or cyclic includes are reported too.

Examples:
  dsdm validate`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	return withManager(func(mgr *module.Manager) error {
		refs, issues, err := mgr.Validate()
		if err != nil {
			return err
		}

		failed := make(map[module.Ref]error, len(issues))
		for _, issue := range issues {
			failed[issue.Module] = issue.Err
		}

		for _, ref := range refs {
			if err, ok := failed[ref]; ok {
				ui.Red.Fprintf(out, "  x %s: %v\n", ref, err)
				continue
			}
			ui.Green.Fprintf(out, "  * %s\n", ref)
		}

		fmt.Fprintln(out)
		if len(issues) > 0 {
			ui.Red.Fprintf(out, "%d of %d modules failed\n", len(issues), len(refs))
			return errValidationFailed
		}

		ui.Green.Fprintf(out, "All %d modules are valid\n", len(refs))
		return nil
	})
}
