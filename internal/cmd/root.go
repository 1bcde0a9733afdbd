// Package cmd provides the CLI commands for dsdm.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/ui"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "0.1.0"

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dsdm",
	Short: "Dotfile modules with templates and includes",
	Long: `dsdm - dotfile modules

Keep configuration as modules in ~/.dsdm.d. Each module is a directory of
template files plus a mod.yaml manifest. Applying a module renders its files
with local and global variables and writes them to ~/.config/<module>,
unless an export rule sends them elsewhere.

MODULE COMMANDS
  mod create  <title>   Create a module with a starter mod.yaml
  mod destroy <title>   Delete a module (asks first, --yes to skip)
  mod apply   <title>   Render a module and its includes
    --dry-run, -n       Show what would be written
    --diff, -d          Show a diff against existing files
  mod deps    <title>   Print the include tree
  mod list              List modules in the store

DEBUG
  debug module <title>  Print a parsed mod.yaml
  debug global          Print the parsed global.yaml
  validate              Dry-run every module in the store

All module commands accept --subdir/-s for modules nested in the store.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetupLogging(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	rootCmd.SetVersionTemplate("dsdm version {{.Version}}\n")
}
