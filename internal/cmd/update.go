package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/ui"
	"github.com/cameronsjo/dsdm/internal/update"
)

// changelogLines is how much of a changelog is shown.
const changelogLines = 10

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update dsdm to the latest version",
	Long: `Update dsdm to the latest version from GitHub releases.

This command will:
1. Check for a newer version on GitHub
2. Download the appropriate binary for your platform
3. Replace the current binary with the new version

Examples:
  dsdm update           # Update to latest version
  dsdm update --check   # Check for updates without installing`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var checkOnly bool

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates, don't install")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ui.Blue.Printf("Current version: %s (%s)\n", version, update.GetPlatformInfo())
	ui.Blue.Println("Checking for updates...")

	if checkOnly {
		release, available, err := update.CheckForUpdate(ctx, version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !available {
			ui.Success("You're running the latest version!")
			return nil
		}

		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		fmt.Println()
		ui.Blue.Println("To update, run: dsdm update")
		printChangelog(release)
		return nil
	}

	release, err := update.Update(ctx, version)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if release == nil {
		ui.Success("You're already running the latest version!")
		return nil
	}

	fmt.Println()
	ui.Success("Successfully updated to version %s!", release.Version)
	printChangelog(release)
	return nil
}

func printChangelog(release *update.Release) {
	lines, more := release.Highlights(changelogLines)
	if len(lines) == 0 {
		return
	}

	fmt.Println()
	ui.Yellow.Println("What's new:")
	for _, line := range lines {
		fmt.Printf("  %s\n", line)
	}
	if more > 0 {
		fmt.Printf("  ... (%d more lines)\n", more)
	}
}
