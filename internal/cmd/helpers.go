package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/dsdm/internal/config"
	"github.com/cameronsjo/dsdm/internal/module"
)

// loadConfig resolves the store layout. Tests replace it to point at a
// temporary home directory.
var loadConfig = config.Load

// withManager loads the configuration and runs fn with a module manager.
func withManager(fn func(mgr *module.Manager) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return fn(module.NewManager(cfg))
}

// addSubdirFlag registers the --subdir flag shared by module commands.
func addSubdirFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "subdir", "s", "", "Store subdirectory containing the module")
	_ = cmd.RegisterFlagCompletionFunc("subdir", completeSubdirs)
}
