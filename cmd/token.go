// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"promptsql/cli/internal/keychain"
	"promptsql/cli/internal/logging"
	"promptsql/cli/internal/terminal"

	"github.com/spf13/cobra"
)

// tokenCmd manages the bearer token sent with every query.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token stored in the OS keychain",
	Long: `Query services behind an authenticating proxy expect a bearer token. The token
is kept in the OS keychain and sent as "Authorization: Bearer <token>".
The PROMPTSQL_TOKEN environment variable takes precedence over the stored token.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [TOKEN]",
	Short: "Store the API token (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "Token: ")
			t, err := terminal.ReadSecret(cmd.InOrStdin())
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			token = t
		}
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("token must not be empty")
		}

		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("%s", logging.PresentError("keychain unavailable", err))
		}
		if err := km.SaveToken(token); err != nil {
			return fmt.Errorf("%s", logging.PresentError("save token", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Token saved to the OS keychain")
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("%s", logging.PresentError("keychain unavailable", err))
		}
		if err := km.ClearToken(); err != nil {
			return fmt.Errorf("%s", logging.PresentError("clear token", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Token removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd)
}
