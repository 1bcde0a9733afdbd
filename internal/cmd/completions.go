package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/module"
)

// completeModuleTitles completes module titles from the store. When
// --subdir is set only modules in that subdirectory are offered.
func completeModuleTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	subdir, _ := cmd.Flags().GetString("subdir")

	var names []string
	err := withManager(func(mgr *module.Manager) error {
		refs, err := mgr.List()
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if ref.Subdir != strings.Trim(subdir, "/") {
				continue
			}
			if strings.HasPrefix(ref.Title, toComplete) {
				names = append(names, ref.Title)
			}
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeSubdirs completes store subdirectories that contain modules.
func completeSubdirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	seen := make(map[string]bool)

	var dirs []string
	err := withManager(func(mgr *module.Manager) error {
		refs, err := mgr.List()
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if ref.Subdir == "" || seen[ref.Subdir] {
				continue
			}
			seen[ref.Subdir] = true
			if strings.HasPrefix(ref.Subdir, toComplete) {
				dirs = append(dirs, ref.Subdir)
			}
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return dirs, cobra.ShellCompDirectiveNoFileComp
}
