// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"catalogctl/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage catalogctl configuration",
	Long: `Manage catalogctl configuration.

Configuration lives in catalogctl.toml at the repository root.
Missing keys fall back to built-in defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefault(repoRoot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Created"), PathStyle.Render(path))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				config.SetConfigFilePathOverride(cfgFile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFilePath(repoRoot))
			return nil
		},
	})
}
