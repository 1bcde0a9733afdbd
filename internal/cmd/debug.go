package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/dsdm/internal/manifest"
	"github.com/cameronsjo/dsdm/internal/module"
)

var debugSubdir string

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Inspect parsed store files",
}

var debugModuleCmd = &cobra.Command{
	Use:   "module <title>",
	Short: "Print a module's parsed mod.yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := module.Ref{Title: args[0], Subdir: debugSubdir}
		return withManager(func(mgr *module.Manager) error {
			m, err := mgr.Read(ref)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), m)
		})
	},
}

var debugContextCmd = &cobra.Command{
	Use:   "context <title>",
	Short: "Print the template variables a module is rendered with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := module.Ref{Title: args[0], Subdir: debugSubdir}
		return withManager(func(mgr *module.Manager) error {
			m, err := mgr.Read(ref)
			if err != nil {
				return err
			}
			g, err := mgr.Globals()
			if err != nil {
				return err
			}
			ctx, err := manifest.BuildContext(&m.Templates, &g.Templates)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), ctx.Data())
		})
	},
}

var debugGlobalCmd = &cobra.Command{
	Use:   "global",
	Short: "Print the parsed global.yaml with effective delimiters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(mgr *module.Manager) error {
			g, err := mgr.Globals()
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), struct {
				Delimiters manifest.Delimiters `yaml:"delimiters"`
				Templates  yaml.Node           `yaml:"templates,omitempty"`
			}{g.Delims(), g.Templates})
		})
	},
}

func init() {
	addSubdirFlag(debugModuleCmd, &debugSubdir)
	addSubdirFlag(debugContextCmd, &debugSubdir)
	debugModuleCmd.ValidArgsFunction = completeModuleTitles
	debugContextCmd.ValidArgsFunction = completeModuleTitles

	debugCmd.AddCommand(debugModuleCmd, debugContextCmd, debugGlobalCmd)
	rootCmd.AddCommand(debugCmd)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
