package cmd

import (
	"fmt"
	"os"

	"github.com/penwyp/pushdeploy/internal/config"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"github.com/penwyp/pushdeploy/ui"
	"github.com/spf13/cobra"
)

// NewConfigCommand 创建 config 命令及其子命令
func NewConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pushdeploy configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file holding the default options",
		Long: `Write a configuration file holding the default options.

Without --path the file is written to the user config directory
(e.g. ~/.config/pushdeploy/config.yaml). Use --path .pushdeploy.yaml to
create a per-repository file. A .json extension selects JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.UserConfigPath()
				if err != nil {
					return pderrors.Wrap(pderrors.ErrTypeConfig, "cannot determine the user config directory", err).
						WithSuggestion("Pass --path explicitly")
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !overwrite {
				return pderrors.Newf(pderrors.ErrTypeConfig, "config file %s already exists", path).
					WithSuggestion("Use --overwrite to replace it")
			}

			manager, err := config.NewYAMLConfigManager(path)
			if err != nil {
				return pderrors.Wrap(pderrors.ErrTypeConfig, "invalid config path", err)
			}
			if err := manager.CreateDefaultConfig(); err != nil {
				return pderrors.Wrap(pderrors.ErrTypeConfig, "failed to write config", err)
			}

			styles := ui.DefaultStyles()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(),
				ui.RenderStatusLine("✓", fmt.Sprintf("Wrote %s", manager.Path()), styles.Success))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file to write (default: user config dir)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file")
	return cmd
}
