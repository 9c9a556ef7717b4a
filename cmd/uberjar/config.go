// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"uberjar-cli/internal/config"
)

// configCmd groups the configuration inspection commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage uberjar configuration",
	Long: `Manage uberjar configuration.

Configuration is stored in:
  - Linux: ~/.config/uberjar/config.toml
  - macOS: ~/Library/Application Support/uberjar/config.toml
  - Windows: %APPDATA%\uberjar\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

// showConfig prints the effective configuration (defaults merged with
// the config file and environment overrides) as TOML.
func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	encoder := toml.NewEncoder(os.Stdout)
	encoder.SetIndentTables(true)
	return encoder.Encode(cfg)
}

func showConfigPath() error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
