// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"promptsql/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// configCmd groups the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		p, _ := config.Path()
		timeout := "transport default"
		if c.TimeoutSeconds > 0 {
			timeout = c.Timeout().String()
		}
		return pterm.DefaultTable.WithData(pterm.TableData{
			{"Setting", "Value"},
			{"config file", p},
			{"server_url", c.ServerURL},
			{"endpoints.query", c.Endpoints.Query},
			{"log_level", c.LogLevel},
			{"timeout", timeout},
		}).WithHasHeader().WithWriter(cmd.OutOrStdout()).Render()
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server URL",
	Short: "Set the query service base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(cmd, func(c *config.Config) error {
			c.ServerURL = strings.TrimRight(strings.TrimSpace(args[0]), "/")
			return nil
		})
	},
}

var configSetLogLevelCmd = &cobra.Command{
	Use:       "set-log-level LEVEL",
	Short:     "Set the diagnostic log level",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.LogLevels,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(cmd, func(c *config.Config) error {
			c.LogLevel = strings.ToLower(args[0])
			return nil
		})
	},
}

var configSetTimeoutCmd = &cobra.Command{
	Use:   "set-timeout SECONDS",
	Short: "Set the request timeout (0 leaves it to the transport)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("timeout must be a whole number of seconds: %w", err)
		}
		return updateConfig(cmd, func(c *config.Config) error {
			c.TimeoutSeconds = n
			return nil
		})
	},
}

// updateConfig loads the persisted file, applies mutate and saves it back.
func updateConfig(cmd *cobra.Command, mutate func(*config.Config) error) error {
	c, err := config.LoadFile()
	if err != nil {
		return err
	}
	if err := mutate(&c); err != nil {
		return err
	}
	if err := config.Save(c); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration saved")
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetServerCmd, configSetLogLevelCmd, configSetTimeoutCmd)
}
