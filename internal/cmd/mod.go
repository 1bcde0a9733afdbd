package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/module"
	"github.com/cameronsjo/dsdm/internal/ui"
)

var (
	modSubdir   string
	destroyYes  bool
	applyDryRun bool
	applyDiff   bool
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Manage modules",
}

var modCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a module with a starter mod.yaml",
	Long: `Create a module directory in the store with a starter mod.yaml.

The store and its global.yaml are created on first use.

Examples:
  dsdm mod create shell
  dsdm mod create git -s tools`,
	Args: cobra.ExactArgs(1),
	RunE: runModCreate,
}

var modDestroyCmd = &cobra.Command{
	Use:   "destroy <title>",
	Short: "Delete a module",
	Long: `Delete a module directory from the store.

Files already exported by the module are left alone.

Examples:
  dsdm mod destroy shell
  dsdm mod destroy git -s tools --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runModDestroy,
}

var modApplyCmd = &cobra.Command{
	Use:   "apply <title>",
	Short: "Render a module and its includes",
	Long: `Render every file of a module and write it to its export destination,
then apply the modules it includes, in order.

Files land in ~/.config/<title>/ unless an export rule in mod.yaml sends
them elsewhere. Existing files are overwritten.

Examples:
  dsdm mod apply shell           # Write files
  dsdm mod apply shell -n        # Show destinations only
  dsdm mod apply shell -d        # Show diff against existing files`,
	Args: cobra.ExactArgs(1),
	RunE: runModApply,
}

var modDepsCmd = &cobra.Command{
	Use:   "deps <title>",
	Short: "Print the include tree of a module",
	Args:  cobra.ExactArgs(1),
	RunE:  runModDeps,
}

var modListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List modules in the store",
	Args:    cobra.NoArgs,
	RunE:    runModList,
}

func init() {
	for _, c := range []*cobra.Command{modCreateCmd, modDestroyCmd, modApplyCmd, modDepsCmd} {
		addSubdirFlag(c, &modSubdir)
		c.ValidArgsFunction = completeModuleTitles
	}
	modCreateCmd.ValidArgsFunction = nil

	modDestroyCmd.Flags().BoolVarP(&destroyYes, "yes", "y", false, "Skip the confirmation prompt")
	modApplyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "Show what would be written without writing")
	modApplyCmd.Flags().BoolVarP(&applyDiff, "diff", "d", false, "Show diff against existing files (implies --dry-run)")

	modCmd.AddCommand(modCreateCmd, modDestroyCmd, modApplyCmd, modDepsCmd, modListCmd)
	rootCmd.AddCommand(modCmd)
}

func moduleRef(args []string) module.Ref {
	return module.Ref{Title: args[0], Subdir: modSubdir}
}

func runModCreate(cmd *cobra.Command, args []string) error {
	ref := moduleRef(args)

	return withManager(func(mgr *module.Manager) error {
		if err := mgr.Create(ref); err != nil {
			return err
		}
		ui.Success("Created module %s", ref)
		ui.Faint.Printf("  %s\n", mgr.Config().ManifestPath(ref.Title, ref.Subdir))
		return nil
	})
}

func runModDestroy(cmd *cobra.Command, args []string) error {
	ref := moduleRef(args)

	confirm := module.Confirmer(promptYesNo)
	if destroyYes {
		confirm = module.AssumeYes
	}

	return withManager(func(mgr *module.Manager) error {
		removed, err := mgr.Destroy(ref, confirm)
		if err != nil {
			return err
		}
		if !removed {
			ui.Warning("Kept module %s", ref)
			return nil
		}
		ui.Success("Deleted module %s", ref)
		return nil
	})
}

func runModApply(cmd *cobra.Command, args []string) error {
	ref := moduleRef(args)
	out := cmd.OutOrStdout()

	opts := module.ApplyOptions{DryRun: applyDryRun || applyDiff}

	var files, changed int
	opts.Observer = func(a module.Action) {
		if a.Kind != module.ActionWrite {
			return
		}
		files++
		src := filepath.ToSlash(filepath.Join(a.Module.String(), a.Source))

		switch {
		case applyDiff:
			if d := renderUnifiedDiff(a.Dest, a.Previous, a.Content, a.Exists); d != "" {
				changed++
				printDiff(out, d)
			}
		case opts.DryRun:
			status := "update"
			if !a.Exists {
				status = "create"
			}
			ui.Cyan.Fprintf(out, "  %-6s ", status)
			fmt.Fprintf(out, "%s → %s\n", src, a.Dest)
		default:
			ui.Write(out, src, a.Dest)
		}
	}

	return withManager(func(mgr *module.Manager) error {
		if err := mgr.Apply(ref, opts); err != nil {
			return err
		}

		switch {
		case applyDiff:
			if changed == 0 {
				ui.Success("No changes (%d files)", files)
			} else {
				ui.Info("%d of %d files would change", changed, files)
			}
		case opts.DryRun:
			ui.Info("Dry run: %d files would be written", files)
		default:
			ui.Success("Applied %s (%d files)", ref, files)
		}
		return nil
	})
}

// printDiff colours a unified diff line by line.
func printDiff(w io.Writer, diff string) {
	for _, line := range splitLines(diff) {
		switch {
		case len(line) >= 3 && (line[:3] == "---" || line[:3] == "+++"):
			ui.Bold.Fprint(w, line)
		case line[0] == '+':
			ui.Green.Fprint(w, line)
		case line[0] == '-':
			ui.Red.Fprint(w, line)
		case line[0] == '@':
			ui.Cyan.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

func runModDeps(cmd *cobra.Command, args []string) error {
	ref := moduleRef(args)

	return withManager(func(mgr *module.Manager) error {
		tree, err := mgr.BuildTree(ref)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderTree(toTreeNode(tree)))
		return nil
	})
}

func toTreeNode(n *module.Node) *ui.TreeNode {
	node := &ui.TreeNode{Name: n.Name}
	for _, child := range n.Children {
		node.Children = append(node.Children, toTreeNode(child))
	}
	return node
}

func runModList(cmd *cobra.Command, args []string) error {
	return withManager(func(mgr *module.Manager) error {
		refs, err := mgr.List()
		if err != nil {
			return err
		}
		for _, ref := range refs {
			fmt.Fprintln(cmd.OutOrStdout(), ref)
		}
		return nil
	})
}
