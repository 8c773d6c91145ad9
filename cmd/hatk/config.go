// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"hatk-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `hatk config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hatk configuration",
	Long: `Manage hatk configuration.

Configuration is stored in:
  - Linux: ~/.config/hatk/config.cue
  - macOS: ~/Library/Application Support/hatk/config.cue
  - Windows: %APPDATA%\hatk\config.cue`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfigFile()
		},
	})
}

func showConfig() error {
	cfg := currentConfig()
	fmt.Print(config.GenerateCUE(cfg))
	return nil
}

func showConfigPath() error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, "config.cue"))
	return nil
}

func initConfigFile() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("%s Configuration at %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(filepath.Join(dir, "config.cue")))
	return nil
}
