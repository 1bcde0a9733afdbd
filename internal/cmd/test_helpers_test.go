package cmd

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/dsdm/internal/config"
)

// resetRootCmd resets the root command state for test isolation.
// Flag variables are package globals, so every flag on every command is
// put back to its default before the next run.
func resetRootCmd(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	// Reset args to empty slice (not nil, which would use os.Args)
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		c.SetContext(context.TODO())
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	return buf
}

// executeCmd executes the root command with the given args and returns the output.
// This handles proper state reset between test executions.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := resetRootCmd(t)
	// Important: Set args BEFORE executing
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// useHome points the commands at a temporary home directory with an
// initialised store and returns its configuration.
func useHome(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New(t.TempDir())
	require.NoError(t, os.MkdirAll(cfg.StoreDir, 0755))
	require.NoError(t, os.WriteFile(cfg.GlobalPath(), []byte("templates:\n  editor: vim\n"), 0644))

	old := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = old })

	return cfg
}

// writeModule writes a module with a manifest and files into the store.
func writeModule(t *testing.T, cfg *config.Config, title, subdir, manifestYAML string, files map[string]string) {
	t.Helper()

	dir := cfg.ModuleDir(title, subdir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(cfg.ManifestPath(title, subdir), []byte(manifestYAML), 0644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(dir+string(os.PathSeparator)+name, []byte(content), 0644))
	}
}
